package game_test

import (
	"fmt"

	"github.com/plus3/propcore/game"
	"github.com/plus3/propcore/memdb"
)

type Poison struct {
	game.PropertyBase
	PerFrame int32
}

func (p *Poison) AcceptedEvents() []game.FrameEvent {
	return []game.FrameEvent{game.Frame}
}

func (p *Poison) AcceptedMessages() []game.MessageType {
	return []game.MessageType{game.MessageTypeOf[Heal]()}
}

func (p *Poison) OnFrame() {
	e := p.Entity()
	hp := game.MustGetComponent[Health](e)
	hp.Current -= p.PerFrame
	if hp.Current <= 0 {
		fmt.Println("entity died")
		e.DestroyDeferred()
		return
	}
	_ = game.SetComponent(e, hp)
}

func (p *Poison) OnMessage(msg game.Message) {
	if _, ok := msg.(Heal); ok {
		fmt.Println("poison cured")
		p.SetActive(false)
	}
}

// ExampleEntity_AddProperty demonstrates a property that reads and writes
// component data every frame and reacts to messages. Deferred destruction is
// applied after the EndFrame pass, once every property has seen the frame.
func ExampleEntity_AddProperty() {
	db := memdb.NewDatabase(memdb.WithComponent("Health", 8))
	_ = db.AddTemplate(memdb.Template{Name: "Victim", Components: []string{"Health"}})

	rt := game.NewRuntime(db)
	game.RegisterComponent[Health](rt.Components(), "Health")
	rt.OnStart()
	defer rt.OnShutdown()

	weak, _ := rt.DefaultWorld().CreateEntity("Victim")
	_ = game.SetComponent(weak, Health{Current: 20, Max: 20})
	weak.AddProperty(&Poison{PerFrame: 10})

	sturdy, _ := rt.DefaultWorld().CreateEntity("Victim")
	_ = game.SetComponent(sturdy, Health{Current: 100, Max: 100})
	sturdy.AddProperty(&Poison{PerFrame: 10})

	rt.Tick(1.0 / 60)
	game.Send(sturdy, Heal{Amount: 1})
	rt.Tick(1.0 / 60)
	rt.Tick(1.0 / 60)

	fmt.Printf("live entities: %d\n", rt.DefaultWorld().Len())
	fmt.Printf("sturdy health: %d\n", game.MustGetComponent[Health](sturdy).Current)

	// Output:
	// poison cured
	// entity died
	// live entities: 1
	// sturdy health: 90
}

// ExampleMessageTypeOf shows how message kinds are named for routing.
func ExampleMessageTypeOf() {
	fmt.Println(game.MessageTypeOf[Damage]())
	fmt.Println(game.MessageTypeOf[*Heal]())

	// Output:
	// game_test.Damage
	// *game_test.Heal
}

package main

import (
	"context"
	"time"

	"lvc-go/bus"
	"lvc-go/services/config"
	"lvc-go/services/hal"
	"lvc-go/services/heartbeat"
	"lvc-go/services/lvc"
	"lvc-go/services/telemetry"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot, profile", config.DefaultProfile)

	ctx := context.WithValue(context.Background(), config.CtxProfileKey, config.DefaultProfile)

	prof, err := config.Load(config.DefaultProfile)
	if err != nil {
		fatal("config", err)
	}
	board, err := hal.Open(hal.Options{
		SampleBits:   uint8(prof.LVC.SampleBits),
		TickMs:       prof.LVC.TickMs,
		Subdivisions: prof.LVC.Subdivisions,
	})
	if err != nil {
		fatal("board", err)
	}
	println("[main] board", board.Desc.Name)
	board.Clock.Start(ctx)

	b := bus.NewBus(8)
	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	heartbeat.New(board.Green, board.Red).Start(ctx, b.NewConnection("heartbeat"))
	if board.Telemetry != nil {
		telemetry.New(board.Telemetry).Start(ctx, b.NewConnection("telemetry"))
	}

	svc := lvc.NewService(b.NewConnection("lvc"), board.Hardware())
	println("[main] boot id", svc.BootID())
	// Does not return on hardware once the controller shuts down.
	err = svc.Run(ctx)
	println("[main] controller stopped:", err.Error())
}

// fatal keeps reporting a setup error with the load left disconnected.
func fatal(what string, err error) {
	for {
		println("[main]", what, "error:", err.Error())
		time.Sleep(5 * time.Second)
	}
}

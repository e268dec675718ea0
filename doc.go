// Package dungeon simulates a fixed pool of concurrent dungeon instances
// draining a shared matchmaking queue of tanks, healers and damage dealers.
// Workers form fixed-size parties through an atomic reservation protocol,
// run a timed simulated dungeon per party and stop once no further party
// can ever form.
//
// The engine is embedded through the high-level Service façade exposed by
// the root package:
//
//	srv, _ := dungeon.New(dungeon.WithConfig(cfg))
//	rt := srv.Runtime()
//	rt.OnStatus(render)
//	report, _ := rt.Run(ctx)
//
// Sub-packages supply the building blocks: service/roster owns the shared
// queues, service/simulation hosts the workers, service/monitor observes,
// service/journal records completed runs and service/report produces the
// final summary.
package dungeon

// Package roon is a typed adapter over the `roon` command-line controller.
//
// The controller talks to the Roon Core and prints JSON; this package never
// speaks the Roon protocol itself. Each Client method spawns one subprocess
// and waits for it:
//
//	runner := roon.NewExecRunner(roon.DefaultConfig(), logger)
//	client := roon.NewClient(runner, logger)
//
//	zones, err := client.Zones(ctx)        // roon zones --json
//	err = client.Volume(ctx, "Speakers", "+5")  // roon volume +5 --output Speakers
//	result, err := client.Select(ctx, 0)   // roon select 1 --json
//
// # Browse Sessions
//
// The controller keeps a browse session between invocations. Browse resets it,
// Search replaces it, Select descends and Back ascends. Select takes a
// zero-based index and sends it one-based on the command line.
//
// # Errors
//
// A command succeeds only if the process exits with status zero. Failures are
// returned as *CommandError, whose message is the trimmed stderr, else the
// trimmed stdout, else "exit code N". Unparseable output is a *DecodeError.
// Missing and unknown JSON fields are tolerated.
//
// # Testing
//
// Client accepts any Runner, so tests can record argument vectors without
// spawning processes. ExecRunner itself is tested with a re-executed test
// binary standing in for the controller.
package roon

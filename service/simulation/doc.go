// Package simulation hosts the instance workers that drain the matchmaking
// roster. Every worker repeatedly reserves a party, sleeps the sampled run
// duration outside the roster lock, records its statistics under the lock
// and loops until the roster reports exhaustion.
package simulation

// Package monitor implements the periodic observer loop. It snapshots the
// roster and instance state under the pool lock once per interval, hands the
// snapshot to a callback outside the critical section and exits once the
// pool is terminal and no instance is active.
package monitor

// Package sim implements the car-convergence simulation.
//
// A Session owns a level counter, the pinned target region and the car set.
// Start spawns level cars around the region center and schedules a periodic
// tick; every tick moves each car a fixed step toward the center until it is
// within the stop distance. Stop cancels the tick synchronously and discards
// all entities. The level keeps growing across runs.
//
// The package has no terminal or network dependencies. Renderers observe a
// Session through Snapshot and Subscribe.
package sim

// Package windfarm defines the core data model of the refinement engine:
// the simulation domain, the expanding farm envelope, turbine records, and
// the sizing-zone descriptions handed to the meshing kernel.
package windfarm

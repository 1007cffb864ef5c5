// Package eos provides equation-of-state models for mineral physics.
//
// Pressure is decomposed in the Mie-Gruneisen form: a static pressure on
// the 300 K reference isotherm plus a Debye-model thermal correction:
//
//	P(V,T) = Pst(V) + Pth(V,T)
//
// Static compression laws implement the [Static] interface:
//
//   - [BM3]: Birch-Murnaghan third-order finite strain
//   - [Vinet]: Vinet universal equation of state
//
// Thermal models implement [Thermal]; [ConstQ] holds the Debye
// temperature fixed at theta0 and scales the Gruneisen parameter as
// gamma0*(V/V0)^q.
//
// [MieGruneisen] composes the two, evaluates total pressure with
// uncertainty propagation, and inverts P(V,T)=P numerically for V.
//
// # Units
//
// Volumes are unit-cell volumes in cubic angstroms, temperatures in
// kelvin, pressures in GPa, internal energies in joules per mole of
// formula units. Evaluators reject volumes wildly out of scale with v0
// so that a molar volume passed by mistake fails instead of producing a
// silently wrong pressure.
package eos

// Package pipeline chains the remoteness stages for one region:
//
//	elevation ─► slope ─┐
//	                    ├─► cost ─► field ─► land mask ─► extract ─► report
//	land cover ─────────┘
//
// Slope and cost are only computed in cost-weighted mode, and only when no
// precomputed cost raster is supplied. With a cache.Store configured, cost
// rasters and fields are looked up by fingerprint before being recomputed.
package pipeline

// Package domain models the GeoPredictor synthetic urban event catalog
// and generator.
//
// # Scenario Catalog
//
// The catalog is a closed, static table of selectable regions (Brazilian
// cities), each with a WGS-84 center coordinate and a default map zoom.
// Every region carries an ordered list of points of interest per event
// category. The featured region, João Pessoa, PB, uses hand-placed
// coordinates for real avenues, beaches, and flood-prone neighborhoods.
// All other regions share a generic offset template: fixed (lat, lon)
// deltas applied to the region center, so the point count and identity
// per category are the same across non-featured regions.
//
// # Event Categories
//
//	traffic  - road congestion, rendered as extruded columns
//	tourist  - visitor concentration, rendered as flat points
//	flood    - flood risk, rendered as extruded columns
//
// # Synthetic Generation
//
// For every calendar date in an inclusive range, the generator draws one
// simulated daily rainfall value from the discrete distribution
// {0mm: 0.60, 5mm: 0.20, 15mm: 0.15, 40mm: 0.05}; the value is shared by
// every record emitted for that date. For each hour 0-23, category, and
// point of interest, exactly one EventRecord is emitted. Intensity is a
// hand-tuned heuristic of hour-of-day, day-of-week (Monday = 0), and -
// for flood risk - the daily rainfall, producing a base value in [0,1]
// plus a uniform random perturbation, clamped to 1.0 and scaled to the
// [0,10] display range. A small positional jitter (±0.001° for traffic,
// ±0.0005° otherwise) keeps co-located records visually distinguishable
// without displacing the conceptual location.
//
// Total record count is always
//
//	dates × 24 × Σ points-of-interest per category
//
// e.g. 7 × 24 × (4+4+3) = 1848 for the featured region over the default
// seven-day window.
//
// Randomness is injected through an explicit *rand.Rand so callers can
// seed for reproducible fixtures; the production server seeds from the
// wall clock, making intensities bounded but non-deterministic across
// runs.
//
// # ID Generation
//
// Record IDs are deterministic SHA-256 hashes of
// region|location|date|hour|category. Re-generating the same scenario
// yields the same IDs regardless of sampled intensities, which enables
// idempotent downstream consumption of exported event sets. See
// [generateID].
package domain

// Package domain models residential solar return-on-investment estimates.
//
// # Location
//
// A ZIP code is reduced to its first two characters and looked up in a
// curated prefix table (not exhaustive). Unknown prefixes resolve to
// [DefaultState] rather than failing. Each state has one representative
// coordinate pair, usually the largest metro:
//
//	"90210" -> "90" -> CA -> (34.05, -118.24)
//	"00000" -> "00" -> unmapped -> CA
//
// The prefix table also holds single-digit keys ("9", "7", "1", "3"). Since
// lookup always slices two characters they only match one-character inputs.
//
// # Environmental data
//
// An [EnvironmentProvider] supplies daily peak sun hours and the residential
// electricity price. [StaticProvider] uses latitude bands and a per-state
// price table:
//
//	lat > 45: 4.0 h | > 40: 4.5 h | > 35: 5.0 h | > 30: 5.5 h | else 6.0 h
//	price: per-state table, 0.15 USD/kWh for unlisted states
//
// [LiveProvider] queries NREL irradiance and EIA retail prices and degrades to
// exactly the static values on any failure. Providers never return errors.
//
// # Incentives
//
// The federal Investment Tax Credit is 30% in every state. State rebates are
// 0-15% and default to 0.
//
// # ROI model
//
//	production  = size_kw * sun_hours * 365 * 0.85
//	savings     = round(production * price)
//	system_cost = size_kw * 3000
//	net_cost    = system_cost * (1 - federal - state_rebate)
//	payback     = net_cost / savings           (NoPayback when savings == 0)
//	net_25yr    = savings * 25 - net_cost
//	savings_pct = round(net_25yr / system_cost * 100)
//
// [Estimate] is pure. [EstimateFromSample] and [EstimateFromEnvironment] only
// differ in where sun hours, price and incentives come from.
package domain

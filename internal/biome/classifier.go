package biome

// Classify maps the three terrain fields, each in [0,1], to exactly one
// biome. The steps are evaluated in a fixed priority order and that order
// is load-bearing: the high-elevation branch claims all elevations above
// 0.8, so a cold peak at elevation 0.85 becomes Alpine, not Tundra.
// Total over the whole input domain; there is no failure path.
func Classify(elevation, temperature, moisture float64) Type {
	if elevation < 0.30 {
		return Ocean
	}
	if elevation < 0.35 {
		return Coastal
	}

	if elevation > 0.80 {
		switch {
		case temperature < 0.30:
			return Alpine
		case temperature < 0.70:
			return Mountain
		default:
			return Volcanic
		}
	}

	if elevation > 0.90 || temperature < 0.10 {
		return Tundra
	}

	switch {
	case temperature > 0.7 && moisture < 0.3:
		return Desert
	case temperature > 0.7 && moisture < 0.6:
		return Savanna
	case temperature > 0.7 && moisture >= 0.6:
		return TropicalRainforest
	case temperature > 0.3 && temperature <= 0.7 && moisture > 0.8:
		return Wetlands
	case temperature > 0.3 && temperature <= 0.7 && moisture > 0.4:
		return Forest
	case temperature > 0.3 && temperature <= 0.7 && moisture <= 0.4:
		return Grasslands
	case temperature <= 0.3:
		return Tundra
	case temperature > 0.8 && moisture < 0.2:
		// Shadowed by the hot arms above; kept to mirror the full
		// decision table.
		return Badlands
	default:
		return Grasslands
	}
}

package spatial

// Clearance returns the minimum distances an environment object of the given
// type keeps from structure footprints and path edges. The same table is used
// at placement time and by the document re-validator, so the recomputed check
// matches the original accept decisions.
func Clearance(envType string) (minStruct, minPath float64) {
	switch envType {
	case "tree":
		return 2.0, 2.0
	case "rock":
		return 2.0, 1.5
	case "bush":
		return 1.5, 1.2
	case "flower", "tall_grass":
		return 1.0, 1.0
	case "mountain":
		return 10.0, 8.0
	case "water":
		return 8.0, 6.0
	case "lava":
		return 8.0, 6.0
	default:
		return 2.5, 2.0
	}
}

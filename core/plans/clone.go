package plans

import "github.com/jinzhu/copier"

// ClonePlaces deep-copies a place list so callers can hold on to it after
// the decoding buffers it came from are reused.
func ClonePlaces(places []Place) []Place {
	if places == nil {
		return nil
	}

	cloned := make([]Place, 0, len(places))
	copier.CopyWithOption(&cloned, places, copier.Option{DeepCopy: true})
	return cloned
}

// ClonePlan deep-copies a plan; nil stays nil.
func ClonePlan(plan *Plan) *Plan {
	if plan == nil {
		return nil
	}

	cloned := &Plan{}
	copier.CopyWithOption(cloned, plan, copier.Option{DeepCopy: true})
	return cloned
}

package bucketmgr

import (
	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// QualityScores computes a 0..1 quality score per filled bucket, weighting
// average entry confidence (70%) and fill completeness against MinEntries
// for multi-value buckets (30%), then subtracting a small penalty per
// correction recorded against that bucket.
func QualityScores(store *convstate.Store) map[bucket.ID]float64 {
	scores := make(map[bucket.ID]float64)
	cat := store.Catalog()

	correctionCounts := make(map[bucket.ID]int)
	for _, c := range store.State.UserCorrections {
		correctionCounts[c.BucketID]++
	}

	for _, def := range cat.List() {
		entries := store.Entries(def.ID)
		if len(entries) == 0 {
			continue
		}

		var confSum float64
		for _, e := range entries {
			confSum += e.Confidence
		}
		avgConfidence := confSum / float64(len(entries))

		completeness := 1.0
		if def.AllowMultiple && def.MinEntries > 0 {
			completeness = float64(len(entries)) / float64(def.MinEntries)
			if completeness > 1.0 {
				completeness = 1.0
			}
		}

		penalty := 0.1 * float64(correctionCounts[def.ID])
		score := avgConfidence*0.7 + completeness*0.3 - penalty
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores[def.ID] = score
	}

	return scores
}

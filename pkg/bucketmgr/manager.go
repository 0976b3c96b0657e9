// Package bucketmgr applies a classifier.Result to a convstate.Store:
// normalizing values, rejecting low-confidence or duplicate updates,
// detecting corrections, expanding social-media and list-shaped buckets,
// and recognizing negative-indicator skips on optional buckets. This is
// the single place dedup and correction-detection live; convstate.Store
// itself only validates and stores.
package bucketmgr

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/classifier"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// MinConfidence is the floor below which a bucket update is discarded
// outright rather than applied.
const MinConfidence = 0.6

// UpdateResult reports what ProcessClassification did with one message's
// bucket updates.
type UpdateResult struct {
	UpdatedBuckets      []bucket.ID
	FailedBuckets       map[bucket.ID]string
	DuplicatesPrevented []bucket.ID
	CorrectionsApplied  []bucket.ID
}

// Success reports whether at least one bucket was updated.
func (r UpdateResult) Success() bool { return len(r.UpdatedBuckets) > 0 }

// Manager applies classification results to a conversation store.
type Manager struct {
	log zerolog.Logger
}

// New builds a Manager.
func New(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "bucketmgr").Logger()}
}

// ProcessClassification walks every bucket update in result and applies it
// to store. Updates are visited in Go map iteration order, which is not
// deterministic; each update touches only its own bucket.
func (m *Manager) ProcessClassification(result classifier.Result, store *convstate.Store, userMessage string, sourceMessageIndex int, now time.Time) UpdateResult {
	out := UpdateResult{FailedBuckets: make(map[bucket.ID]string)}
	cat := store.Catalog()

	for id, raw := range result.BucketUpdates {
		if raw.Confidence < MinConfidence {
			m.log.Info().Str("bucket", string(id)).Float64("confidence", raw.Confidence).Msg("skipping update below confidence floor")
			continue
		}

		def, ok := cat.Get(id)
		if !ok {
			out.FailedBuckets[id] = "unknown bucket"
			continue
		}

		isCorrection := result.UserIntent == classifier.IntentCorrection || isImplicitCorrection(id, store, userMessage)

		switch {
		case def.AllowMultiple:
			m.applyMultiValue(id, def, raw, store, isCorrection, sourceMessageIndex, now, &out)
		default:
			m.applySingleValue(id, def, raw, store, isCorrection, userMessage, sourceMessageIndex, now, &out)
		}
	}

	m.log.Info().
		Str("intent", string(result.UserIntent)).
		Strs("updated", idStrings(out.UpdatedBuckets)).
		Msg("bucket update applied")

	return out
}

func (m *Manager) applyMultiValue(id bucket.ID, def bucket.Definition, raw classifier.RawUpdate, store *convstate.Store, isCorrection bool, sourceMessageIndex int, now time.Time, out *UpdateResult) {
	items, ok := raw.Value.([]string)
	if !ok {
		if s, ok2 := raw.Value.(string); ok2 && id == bucket.SocialMedia {
			m.applySocialMediaString(s, raw.Confidence, store, isCorrection, sourceMessageIndex, now, out)
			return
		}
		out.FailedBuckets[id] = "expected a list value"
		return
	}

	if len(items) == 0 {
		if store.UpdateBucket(id, convstate.TextValue(convstate.NoneMarker), raw.Confidence, sourceMessageIndex, isCorrection, now) {
			out.UpdatedBuckets = append(out.UpdatedBuckets, id)
			m.log.Info().Str("bucket", string(id)).Msg("user indicated they have none")
		}
		return
	}

	if id == bucket.SocialMedia {
		joined := strings.Join(items, "\n")
		m.applySocialMediaString(joined, raw.Confidence, store, isCorrection, sourceMessageIndex, now, out)
		return
	}

	var previous []convstate.Value
	if isCorrection {
		previous, _ = store.GetValue(id)
	}

	anyApplied := false
	anyFailed := false
	for _, item := range items {
		item = normalize(id, item)
		if isDuplicate(id, item, store) {
			out.DuplicatesPrevented = append(out.DuplicatesPrevented, id)
			continue
		}
		// store.UpdateBucket validates each item as one entry of the list.
		if store.UpdateBucket(id, convstate.TextValue(item), raw.Confidence, sourceMessageIndex, isCorrection, now) {
			anyApplied = true
		} else {
			out.FailedBuckets[id] = "validation failed for item: " + item
			anyFailed = true
		}
	}
	if anyApplied {
		out.UpdatedBuckets = append(out.UpdatedBuckets, id)
		if isCorrection {
			out.CorrectionsApplied = append(out.CorrectionsApplied, id)
			if len(previous) > 0 {
				old := make([]string, len(previous))
				for i, v := range previous {
					old[i] = v.String()
				}
				newVals, _ := store.GetValue(id)
				newStrs := make([]string, len(newVals))
				for i, v := range newVals {
					newStrs[i] = v.String()
				}
				store.RecordCorrection(convstate.Correction{
					BucketID:     id,
					OldValue:     strings.Join(old, "; "),
					NewValue:     strings.Join(newStrs, "; "),
					MessageIndex: sourceMessageIndex,
				})
			}
		}
	} else if anyFailed {
		// failure reason already recorded above
	}
}

func (m *Manager) applySocialMediaString(text string, confidence float64, store *convstate.Store, isCorrection bool, sourceMessageIndex int, now time.Time, out *UpdateResult) {
	profiles := bucket.ParseSocialProfiles(text)
	if len(profiles) == 0 {
		out.FailedBuckets[bucket.SocialMedia] = "could not parse any social media profile"
		return
	}
	applied := false
	for _, p := range profiles {
		if store.UpdateBucket(bucket.SocialMedia, convstate.SocialValue(p), confidence, sourceMessageIndex, isCorrection, now) {
			applied = true
		}
	}
	if applied {
		out.UpdatedBuckets = append(out.UpdatedBuckets, bucket.SocialMedia)
		m.log.Info().Int("count", len(profiles)).Msg("processed social media profiles")
	}
}

func (m *Manager) applySingleValue(id bucket.ID, def bucket.Definition, raw classifier.RawUpdate, store *convstate.Store, isCorrection bool, userMessage string, sourceMessageIndex int, now time.Time, out *UpdateResult) {
	valueStr, isString := raw.Value.(string)
	if !isString {
		out.FailedBuckets[id] = "expected a scalar value"
		return
	}
	valueStr = normalize(id, valueStr)

	duplicate := isDuplicate(id, valueStr, store)
	if isCorrection {
		// A correction replaces the current value, so only a value equal to
		// it (ignoring case) counts as a duplicate.
		duplicate = false
		if vals, ok := store.GetValue(id); ok {
			duplicate = strings.EqualFold(strings.TrimSpace(vals[0].String()), strings.TrimSpace(valueStr))
		}
	}
	if duplicate {
		out.DuplicatesPrevented = append(out.DuplicatesPrevented, id)
		m.log.Info().Str("bucket", string(id)).Msg("prevented duplicate entry")
		return
	}

	value, validated := toStoreValue(id, def, valueStr)
	if !validated {
		if !def.Required && isNegativeIndicator(userMessage) {
			store.MarkOptionalSkipped(id)
			out.UpdatedBuckets = append(out.UpdatedBuckets, id)
			m.log.Info().Str("bucket", string(id)).Msg("user indicated they don't have this optional field")
			return
		}
		out.FailedBuckets[id] = "validation failed"
		return
	}

	var previous []convstate.Value
	if isCorrection {
		previous, _ = store.GetValue(id)
	}

	if store.UpdateBucket(id, value, raw.Confidence, sourceMessageIndex, isCorrection, now) {
		out.UpdatedBuckets = append(out.UpdatedBuckets, id)
		if isCorrection {
			out.CorrectionsApplied = append(out.CorrectionsApplied, id)
			if len(previous) > 0 {
				store.RecordCorrection(convstate.Correction{
					BucketID:     id,
					OldValue:     previous[0].String(),
					NewValue:     value.String(),
					MessageIndex: sourceMessageIndex,
				})
			}
		}
	} else {
		out.FailedBuckets[id] = "update failed"
	}
}

// toStoreValue converts a normalized string into the convstate.Value shape
// the bucket expects, and reports whether the catalog validator accepts it.
func toStoreValue(id bucket.ID, def bucket.Definition, s string) (convstate.Value, bool) {
	if def.DataType == bucket.DataNumber {
		n, ok := bucket.NormalizeYearsExperience(s)
		if !ok || !def.Validate(n) {
			return convstate.Value{}, false
		}
		return convstate.NumberValue(n), true
	}
	if !def.Validate(s) {
		return convstate.Value{}, false
	}
	if def.DataType == bucket.DataURL {
		return convstate.URLValue(s), true
	}
	return convstate.TextValue(s), true
}

// normalize applies the bucket-specific normalizer, mirroring
// BucketManager.normalizers in the original implementation.
func normalize(id bucket.ID, value string) string {
	switch id {
	case bucket.Email:
		return bucket.NormalizeEmail(value)
	case bucket.Phone:
		return bucket.NormalizePhone(value)
	case bucket.LinkedInURL:
		return bucket.NormalizeLinkedInURL(value)
	case bucket.Website:
		return bucket.NormalizeWebsite(value)
	case bucket.FullName:
		return bucket.NormalizeName(value)
	default:
		return value
	}
}

var negativeIndicators = []string{
	"don't have", "dont have", "do not have", "no ", "none", "not applicable", "n/a",
}

func isNegativeIndicator(userMessage string) bool {
	lower := strings.ToLower(userMessage)
	for _, indicator := range negativeIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func idStrings(ids []bucket.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

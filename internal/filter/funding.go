// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"time"

	"github.com/pdiddy/research-directory/pkg/types"
)

// FundingBucket is a named funding range offered as a preset filter.
type FundingBucket struct {
	Label string   `json:"label" yaml:"label"`
	Min   *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

func bound(v float64) *float64 { return &v }

// FundingBuckets are the preset ranges. Index 0 matches every record.
var FundingBuckets = []FundingBucket{
	{Label: "Any amount"},
	{Label: "Under $100K", Max: bound(99999)},
	{Label: "$100K - $1M", Min: bound(100000), Max: bound(999999)},
	{Label: "$1M - $10M", Min: bound(1000000), Max: bound(9999999)},
	{Label: "Over $10M", Min: bound(10000000)},
}

// Bucket returns the preset at index i.
func Bucket(i int) (FundingBucket, bool) {
	if i < 0 || i >= len(FundingBuckets) {
		return FundingBucket{}, false
	}
	return FundingBuckets[i], true
}

// BucketCount pairs a bucket with the number of open opportunities in it.
type BucketCount struct {
	FundingBucket
	Index int `json:"index" yaml:"index"`
	Count int `json:"count" yaml:"count"`
}

// BucketCounts counts the opportunities open at now in each funding bucket.
func BucketCounts(records []types.Opportunity, now time.Time) []BucketCount {
	open := Open(records, now)
	counts := make([]BucketCount, len(FundingBuckets))
	for i, b := range FundingBuckets {
		counts[i] = BucketCount{FundingBucket: b, Index: i}
		for _, o := range open {
			if InFundingRange(o, b.Min, b.Max) {
				counts[i].Count++
			}
		}
	}
	return counts
}

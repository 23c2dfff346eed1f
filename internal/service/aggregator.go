package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"feedback-survey/internal/models"
)

// RecentLimit caps the recent list on the dashboard.
const RecentLimit = 10

const (
	defaultCategory  = "Other"
	defaultRecommend = "Maybe"
)

// Distribution counts occurrences per key and keeps keys in first-seen order.
type Distribution struct {
	keys   []string
	counts map[string]int
}

func NewDistribution() *Distribution {
	return &Distribution{counts: make(map[string]int)}
}

func (d *Distribution) Add(key string) {
	if _, ok := d.counts[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.counts[key]++
}

// Keys returns the keys in first-seen order.
func (d *Distribution) Keys() []string {
	return append([]string(nil), d.keys...)
}

func (d *Distribution) Count(key string) int {
	return d.counts[key]
}

func (d *Distribution) Len() int {
	return len(d.keys)
}

// MarshalJSON writes a JSON object whose members follow insertion order.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if d != nil {
		for i, k := range d.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(d.counts[k]))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Results is the dashboard summary.
type Results struct {
	Total      int               `json:"total"`
	AvgRating  float64           `json:"avg_rating"`
	Ratings    *Distribution     `json:"ratings"`
	Categories *Distribution     `json:"categories"`
	Recommend  *Distribution     `json:"recommend"`
	Recent     []models.Feedback `json:"recent"`
}

// Aggregate summarizes records, which must already be ordered newest first.
// The average rounds half away from zero to one decimal place.
func Aggregate(records []models.Feedback) Results {
	res := Results{
		Ratings:    NewDistribution(),
		Categories: NewDistribution(),
		Recommend:  NewDistribution(),
		Recent:     []models.Feedback{},
	}
	res.Total = len(records)
	if res.Total == 0 {
		return res
	}

	sum := 0
	for _, r := range records {
		res.Ratings.Add(strconv.Itoa(r.Rating))
		sum += r.Rating

		category := r.Category
		if category == "" {
			category = defaultCategory
		}
		res.Categories.Add(category)

		recommend := r.Recommend
		if recommend == "" {
			recommend = defaultRecommend
		}
		res.Recommend.Add(recommend)
	}

	n := min(RecentLimit, len(records))
	res.Recent = append(res.Recent, records[:n]...)
	res.AvgRating = roundTenth(float64(sum) / float64(res.Total))
	return res
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}

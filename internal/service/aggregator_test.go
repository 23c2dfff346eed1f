package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"feedback-survey/internal/models"
)

func records(ratings ...int) []models.Feedback {
	out := make([]models.Feedback, len(ratings))
	for i, r := range ratings {
		out[i] = models.Feedback{
			ID:        int64(len(ratings) - i),
			Rating:    r,
			Category:  "Product",
			Message:   fmt.Sprintf("msg %d", i),
			Recommend: "Yes",
		}
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(nil)

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"total":0,"avg_rating":0,"ratings":{},"categories":{},"recommend":{},"recent":[]}`
	if string(raw) != want {
		t.Errorf("Aggregate(nil) = %s, want %s", raw, want)
	}
}

func TestAggregateDistribution(t *testing.T) {
	res := Aggregate(records(5, 5, 3, 1))

	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
	if res.AvgRating != 3.5 {
		t.Errorf("AvgRating = %v, want 3.5", res.AvgRating)
	}
	if got := res.Ratings.Keys(); !reflect.DeepEqual(got, []string{"5", "3", "1"}) {
		t.Errorf("rating keys = %v, want first-seen order [5 3 1]", got)
	}
	raw, _ := json.Marshal(res.Ratings)
	if string(raw) != `{"5":2,"3":1,"1":1}` {
		t.Errorf("ratings = %s", raw)
	}
}

func TestAggregateKeyOrderIsFirstSeen(t *testing.T) {
	res := Aggregate(records(1, 4, 2, 4))
	raw, _ := json.Marshal(res.Ratings)
	if string(raw) != `{"1":1,"4":2,"2":1}` {
		t.Errorf("ratings = %s, want insertion order", raw)
	}
}

func TestAggregateRounding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ratings []int
		want    float64
	}{
		{[]int{5}, 5},
		{[]int{1, 2}, 1.5},
		{[]int{5, 3, 3, 2}, 3.3}, // 3.25 rounds half away from zero
		{[]int{4, 4, 5}, 4.3},
		{[]int{1, 1, 2}, 1.3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprint(tt.ratings), func(t *testing.T) {
			t.Parallel()
			if got := Aggregate(records(tt.ratings...)).AvgRating; got != tt.want {
				t.Errorf("AvgRating = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateDefaultBuckets(t *testing.T) {
	in := records(4, 2, 3)
	in[0].Category = ""
	in[1].Recommend = ""
	in[2].Category = "Support"

	res := Aggregate(in)
	if res.Categories.Count("Other") != 1 {
		t.Errorf("categories[Other] = %d, want 1", res.Categories.Count("Other"))
	}
	if res.Categories.Count("Product") != 1 || res.Categories.Count("Support") != 1 {
		t.Errorf("categories = %v", res.Categories.Keys())
	}
	if res.Recommend.Count("Maybe") != 1 || res.Recommend.Count("Yes") != 2 {
		t.Errorf("recommend Maybe=%d Yes=%d, want 1 and 2", res.Recommend.Count("Maybe"), res.Recommend.Count("Yes"))
	}
}

func TestAggregateRecent(t *testing.T) {
	in := records(1, 2, 3, 4, 5, 1, 2, 3, 4, 5, 1, 2)
	res := Aggregate(in)

	if len(res.Recent) != RecentLimit {
		t.Fatalf("len(Recent) = %d, want %d", len(res.Recent), RecentLimit)
	}
	for i := range res.Recent {
		if res.Recent[i].ID != in[i].ID {
			t.Errorf("Recent[%d].ID = %d, want %d", i, res.Recent[i].ID, in[i].ID)
		}
	}

	short := Aggregate(records(3, 4))
	if len(short.Recent) != 2 {
		t.Errorf("len(Recent) = %d, want 2", len(short.Recent))
	}
}

func TestAggregateIdempotent(t *testing.T) {
	in := records(5, 1, 4)
	a, _ := json.Marshal(Aggregate(in))
	b, _ := json.Marshal(Aggregate(in))
	if string(a) != string(b) {
		t.Errorf("Aggregate is not stable:\n%s\n%s", a, b)
	}
}

func TestDistributionEscapesKeys(t *testing.T) {
	d := NewDistribution()
	d.Add(`say "hi"`)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `{"say \"hi\"":1}` {
		t.Errorf("Marshal() = %s", raw)
	}
}

package timings

import "testing"

func TestRatioFromEDID(t *testing.T) {
	tests := []struct {
		name string
		hor  uint8
		vert uint8
		want AspectRatio
	}{
		{"neither set", 0, 0, AspectRatio{16, 9}},
		{"both set is size in cm", 53, 30, AspectRatio{53, 30}},
		{"landscape 16:9 code", 79, 0, AspectRatio{16, 9}},
		{"landscape 4:3 code", 34, 0, AspectRatio{4, 3}},
		{"landscape 15:9 code", 68, 0, AspectRatio{15, 9}},
		{"landscape generic code", 61, 0, AspectRatio{160, 100}},
		{"portrait swaps 16:9", 0, 79, AspectRatio{9, 16}},
		{"portrait swaps generic", 0, 61, AspectRatio{100, 160}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RatioFromEDID(tt.hor, tt.vert); got != tt.want {
				t.Errorf("RatioFromEDID(%d, %d) = %v, want %v", tt.hor, tt.vert, got, tt.want)
			}
		})
	}
}

package maskeraser

import "testing"

func TestAspectRatioHint(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		want          string
	}{
		{name: "square", width: 512, height: 512, want: "1:1"},
		{name: "landscape_photo", width: 800, height: 600, want: "4:3"},
		{name: "portrait_photo", width: 600, height: 800, want: "3:4"},
		{name: "widescreen", width: 1920, height: 1080, want: "16:9"},
		{name: "phone_portrait", width: 1080, height: 1920, want: "9:16"},
		{name: "near_square", width: 510, height: 500, want: "1:1"},
		{name: "ultrawide_rounds_to_widest", width: 3440, height: 1440, want: "16:9"},
		{name: "degenerate", width: 0, height: 100, want: "1:1"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := AspectRatioHint(tc.width, tc.height); got != tc.want {
				t.Fatalf("AspectRatioHint(%d, %d) = %q, want %q", tc.width, tc.height, got, tc.want)
			}
		})
	}
}

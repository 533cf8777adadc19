package tmdb

import "testing"

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestFormatGenres(t *testing.T) {
	cases := []struct {
		name   string
		genres []Genre
		want   string
	}{
		{"nil list", nil, "Unknown"},
		{"empty list", []Genre{}, "Unknown"},
		{"single", []Genre{{Name: strp("Drama")}}, "Drama"},
		{"many", []Genre{{Name: strp("Drama")}, {Name: strp("Crime")}}, "Drama | Crime"},
		{"nil name", []Genre{{Name: strp("Drama")}, {Name: nil}}, "Drama | "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatGenres(tc.genres); got != tc.want {
				t.Fatalf("FormatGenres() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	if got := (&MovieDetails{Runtime: intp(120)}).Duration(); got != "120 Minutes" {
		t.Fatalf("got %q", got)
	}
	if got := (&MovieDetails{}).Duration(); got != "0 Minutes" {
		t.Fatalf("got %q", got)
	}
	var d *MovieDetails
	if d.Duration() != "0 Minutes" || d.GenreLabel() != "Unknown" {
		t.Fatal("nil details should use defaults")
	}
}

func TestPosterURL(t *testing.T) {
	if got := PosterURL("https://img.example/t/p/w500", "/a.jpg"); got != "https://img.example/t/p/w500/a.jpg" {
		t.Fatalf("got %q", got)
	}
	if got := PosterURL("https://img.example/", "a.jpg"); got != "https://img.example/a.jpg" {
		t.Fatalf("got %q", got)
	}
	if got := PosterURL("", "/a.jpg"); got != DefaultImageBaseURL+"/a.jpg" {
		t.Fatalf("got %q", got)
	}
	if got := PosterURL("https://img.example", ""); got != "" {
		t.Fatalf("expected empty url for missing poster, got %q", got)
	}
}

func TestYear(t *testing.T) {
	if Year("2020-01-01") != "2020" {
		t.Fatal("expected 2020")
	}
	if Year("20") != "20" {
		t.Fatal("short dates are returned as-is")
	}
	if Year("") != "" {
		t.Fatal("expected empty")
	}
}

package tmdb

import (
	"strconv"
	"strings"
)

const (
	GenreSeparator = " | "
	UnknownGenre   = "Unknown"
)

// RuntimeMinutes is the upstream runtime or 0 when absent.
func (d *MovieDetails) RuntimeMinutes() int {
	if d == nil || d.Runtime == nil {
		return 0
	}
	return *d.Runtime
}

// FormatDuration renders "<minutes> Minutes".
func FormatDuration(minutes int) string {
	return strconv.Itoa(minutes) + " Minutes"
}

// FormatGenres joins genre names with " | ". A nil name contributes an empty
// string; an absent or empty list yields "Unknown".
func FormatGenres(genres []Genre) string {
	if len(genres) == 0 {
		return UnknownGenre
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		if g.Name != nil {
			names[i] = *g.Name
		}
	}
	return strings.Join(names, GenreSeparator)
}

// Duration and GenreLabel are the display strings merged into a summary.
func (d *MovieDetails) Duration() string {
	return FormatDuration(d.RuntimeMinutes())
}

func (d *MovieDetails) GenreLabel() string {
	if d == nil {
		return UnknownGenre
	}
	return FormatGenres(d.Genres)
}

// PosterURL joins the image base and a relative poster path.
func PosterURL(imageBase, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if imageBase == "" {
		imageBase = DefaultImageBaseURL
	}
	return strings.TrimRight(imageBase, "/") + "/" + strings.TrimLeft(posterPath, "/")
}

// Year is the leading four characters of a release date.
func Year(releaseDate string) string {
	if len(releaseDate) < 4 {
		return releaseDate
	}
	return releaseDate[:4]
}

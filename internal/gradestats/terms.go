package gradestats

import "fmt"

// TermName renders an encoded term number as an academic term, e.g.
// 1239 -> "Fall 2023". The last digit encodes the season (3 Spring,
// 5 Summer, 9 Fall); the remaining digits are years since 1900.
func TermName(term int) string {
	var season string
	switch term % 10 {
	case 3:
		season = "Spring"
	case 5:
		season = "Summer"
	case 9:
		season = "Fall"
	default:
		return "Invalid Term"
	}
	return fmt.Sprintf("%s %d", season, 1900+term/10)
}

// TermYear returns the calendar year of an encoded term number.
func TermYear(term int) int {
	return 1900 + term/10
}

// LevelPrefixes maps named course levels to the course-number first digits
// they cover: undergraduate 1000-4999, master 5000-6999, doctoral 7000-9999.
// Unknown level names are ignored.
func LevelPrefixes(levels []string) []string {
	var prefixes []string
	for _, level := range levels {
		switch level {
		case "undergraduate":
			prefixes = append(prefixes, "1", "2", "3", "4")
		case "master":
			prefixes = append(prefixes, "5", "6")
		case "doctoral":
			prefixes = append(prefixes, "7", "8", "9")
		}
	}
	return prefixes
}

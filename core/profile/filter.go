package profile

import (
	"sort"
	"strconv"
	"strings"
)

// FilterDirectory returns the subset of profiles visible in the alumni
// directory for the given viewer and filter. It is a pure function of its
// inputs: the viewer's own profile is always excluded, the search term does a
// case-insensitive substring match on full name, major, company or position
// (any one match suffices), and the year/mentor selectors must match exactly
// unless set to their "all" values.
func FilterDirectory(profiles []Profile, viewerID string, filter DirectoryFilter) []Profile {
	term := strings.ToLower(filter.Search)

	filtered := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.ID == viewerID {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if !matchesYear(p, filter.Year) {
			continue
		}
		if !matchesMentor(p, filter.Mentor) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesTerm(p Profile, term string) bool {
	return strings.Contains(strings.ToLower(p.FullName), term) ||
		strings.Contains(strings.ToLower(p.Major), term) ||
		strings.Contains(strings.ToLower(p.CurrentCompany), term) ||
		strings.Contains(strings.ToLower(p.CurrentPosition), term)
}

func matchesYear(p Profile, year string) bool {
	if year == "" || year == GraduationAllVal {
		return true
	}
	if p.GraduationYear == nil {
		return false
	}
	return strconv.Itoa(*p.GraduationYear) == year
}

func matchesMentor(p Profile, mentor string) bool {
	switch mentor {
	case MentorsOnly:
		return p.IsMentor
	case NonMentorsOnly:
		return !p.IsMentor
	default:
		return true
	}
}

// GraduationYears returns the distinct graduation years present in profiles,
// descending; used to populate the directory's year selector.
func GraduationYears(profiles []Profile) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)
	for _, p := range profiles {
		if p.GraduationYear == nil || seen[*p.GraduationYear] {
			continue
		}
		seen[*p.GraduationYear] = true
		years = append(years, *p.GraduationYear)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

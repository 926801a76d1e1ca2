package profile

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestFilterDirectory(t *testing.T) {
	viewer := Profile{ID: "viewer", FullName: "Viewer V", GraduationYear: intPtr(2020)}
	ada := Profile{ID: "ada", FullName: "Ada Lovelace", Major: "Mathematics", CurrentCompany: "Analytical Engines", CurrentPosition: "Engineer", GraduationYear: intPtr(2018), IsMentor: true}
	grace := Profile{ID: "grace", FullName: "Grace Hopper", Major: "Computer Science", CurrentCompany: "Navy", CurrentPosition: "Admiral", GraduationYear: intPtr(2020)}
	linus := Profile{ID: "linus", FullName: "Linus T", Major: "Computer Science", GraduationYear: nil}

	all := []Profile{viewer, ada, grace, linus}

	ids := func(profiles []Profile) []string {
		out := make([]string, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter DirectoryFilter
		want   []string
	}{
		{name: "empty filter excludes viewer only", filter: DirectoryFilter{}, want: []string{"ada", "grace", "linus"}},
		{name: "search matches name", filter: DirectoryFilter{Search: "lovelace"}, want: []string{"ada"}},
		{name: "search is case-insensitive", filter: DirectoryFilter{Search: "GRACE"}, want: []string{"grace"}},
		{name: "search matches major", filter: DirectoryFilter{Search: "computer"}, want: []string{"grace", "linus"}},
		{name: "search matches company", filter: DirectoryFilter{Search: "navy"}, want: []string{"grace"}},
		{name: "search matches position", filter: DirectoryFilter{Search: "engineer"}, want: []string{"ada"}},
		{name: "search matches nothing", filter: DirectoryFilter{Search: "quantum"}, want: []string{}},
		{name: "year all", filter: DirectoryFilter{Year: "all"}, want: []string{"ada", "grace", "linus"}},
		{name: "exact year", filter: DirectoryFilter{Year: "2018"}, want: []string{"ada"}},
		{name: "year excludes null years", filter: DirectoryFilter{Year: "2020"}, want: []string{"grace"}},
		{name: "mentors only", filter: DirectoryFilter{Mentor: MentorsOnly}, want: []string{"ada"}},
		{name: "non-mentors only", filter: DirectoryFilter{Mentor: NonMentorsOnly}, want: []string{"grace", "linus"}},
		{name: "combined", filter: DirectoryFilter{Search: "computer", Mentor: NonMentorsOnly, Year: "2020"}, want: []string{"grace"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDirectory(all, viewer.ID, tt.filter)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("FilterDirectory() = %v, want %v", ids(got), tt.want)
			}
		})
	}

	t.Run("filtering twice gives the same result", func(t *testing.T) {
		filter := DirectoryFilter{Search: "computer"}
		once := FilterDirectory(all, viewer.ID, filter)
		twice := FilterDirectory(once, viewer.ID, filter)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("second pass = %v, want %v", ids(twice), ids(once))
		}
	})
}

func TestGraduationYears(t *testing.T) {
	profiles := []Profile{
		{ID: "a", GraduationYear: intPtr(2018)},
		{ID: "b", GraduationYear: intPtr(2022)},
		{ID: "c", GraduationYear: nil},
		{ID: "d", GraduationYear: intPtr(2018)},
		{ID: "e", GraduationYear: intPtr(2020)},
	}
	want := []int{2022, 2020, 2018}
	if got := GraduationYears(profiles); !reflect.DeepEqual(got, want) {
		t.Errorf("GraduationYears() = %v, want %v", got, want)
	}
}

func TestDirectoryFilterClean(t *testing.T) {
	f := DirectoryFilter{Search: "  Ada ", Year: "", Mentor: "Mentors"}
	f.Clean()
	if f.Search != "Ada" {
		t.Errorf("Search = %q, want %q", f.Search, "Ada")
	}
	if f.Year != GraduationAllVal {
		t.Errorf("Year = %q, want %q", f.Year, GraduationAllVal)
	}
	if f.Mentor != "mentors" {
		t.Errorf("Mentor = %q, want %q", f.Mentor, "mentors")
	}
	if f.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
}

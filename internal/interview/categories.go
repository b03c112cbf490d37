package interview

import (
	"sort"

	"github.com/jonathan/resume-analyzer/internal/types"
)

type categoryGroup struct {
	name   string
	skills []string
}

// containerLabels gives each question-relevant skill container the
// category label used when the skill record itself carries none
var containerLabels = []struct {
	label string
	pick  func(types.SkillSet) []types.Skill
}{
	{"Technical", func(s types.SkillSet) []types.Skill { return s.Technical }},
	{"Programming Languages", func(s types.SkillSet) []types.Skill { return s.Languages }},
	{"Frameworks", func(s types.SkillSet) []types.Skill { return s.Frameworks }},
	{"Tools", func(s types.SkillSet) []types.Skill { return s.Tools }},
}

// categoryGroups buckets the question-relevant skills (soft skills are
// interviewed behaviorally, not technically) by category. Output order
// is sorted by category name so count allocation is deterministic.
func categoryGroups(skills types.SkillSet) []categoryGroup {
	buckets := make(map[string][]string)
	for _, container := range containerLabels {
		for _, sk := range container.pick(skills) {
			category := sk.Category
			if category == "" || category == "General" {
				category = container.label
			}
			buckets[category] = append(buckets[category], sk.Name)
		}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]categoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, categoryGroup{name: name, skills: buckets[name]})
	}
	return groups
}

// allocate splits total across buckets proportionally to their sizes
// using largest remainders, so the parts always sum to total. Buckets
// with zero size get zero.
func allocate(total int, sizes []int) []int {
	counts := make([]int, len(sizes))
	sum := 0
	for _, s := range sizes {
		sum += s
	}
	if sum == 0 || total == 0 {
		return counts
	}

	type remainder struct {
		index    int
		fraction float64
	}
	assigned := 0
	remainders := make([]remainder, 0, len(sizes))
	for i, s := range sizes {
		exact := float64(total) * float64(s) / float64(sum)
		counts[i] = int(exact)
		assigned += counts[i]
		remainders = append(remainders, remainder{index: i, fraction: exact - float64(counts[i])})
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].fraction > remainders[j].fraction
	})
	for k := 0; assigned < total; k++ {
		counts[remainders[k%len(remainders)].index]++
		assigned++
	}
	return counts
}

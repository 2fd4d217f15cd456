package catalog

import "strings"

// SkillVocabulary is the controlled list of skills an event can require.
// Anything outside it goes through the free-text custom skills field.
var SkillVocabulary = []string{
	"Teaching", "First Aid", "Event Planning", "Social Media", "Photography", "Writing/Editing",
	"Leadership", "Communication", "Project Management", "Fundraising", "Marketing",
	"Web Development", "Graphic Design", "Data Analysis", "Research", "Public Speaking",
	"Language Translation", "Counseling", "Sports Coaching", "Music", "Art & Crafts",
	"Environmental Conservation", "Animal Care", "Healthcare", "Elderly Care", "Child Care",
	"Food Service", "Administrative", "Legal Aid", "IT Support", "Logistics",
	"Mental Health Support", "Crisis Management", "Disaster Response", "Community Outreach",
	"Cultural Awareness", "Sign Language", "Special Education", "Youth Mentoring",
	"Financial Literacy", "Tutoring", "Gardening", "Carpentry", "Cooking", "Driving",
	"Emergency Response", "Grant Writing", "Social Work", "Conflict Resolution",
	"Disability Support", "Veteran Support", "Homeless Support", "Literacy Education",
	"Digital Marketing", "Video Production", "Content Creation", "Technical Writing",
	"Database Management", "Mobile App Development", "UI/UX Design", "Quality Assurance",
	"Cybersecurity", "Cloud Computing", "Data Privacy", "Blockchain", "AI/ML",
	"Virtual Reality", "Augmented Reality", "3D Printing", "Robotics", "IoT",
	"Environmental Science", "Renewable Energy", "Waste Management", "Water Conservation",
	"Sustainable Agriculture", "Climate Change Education", "Wildlife Conservation",
	"Marine Conservation", "Forest Conservation", "Habitat Restoration",
}

var skillSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(SkillVocabulary))
	for _, skill := range SkillVocabulary {
		set[skill] = struct{}{}
	}
	return set
}()

// IsControlledSkill reports whether skill is in the vocabulary.
func IsControlledSkill(skill string) bool {
	_, ok := skillSet[skill]
	return ok
}

// MergeSkills combines vocabulary selections with the free-text custom
// skills field: custom entries are comma-split and trimmed, empties are
// dropped, and duplicates across both inputs are removed while preserving
// first-seen order.
func MergeSkills(selected []string, custom string) []string {
	merged := make([]string, 0, len(selected))
	seen := make(map[string]struct{})

	appendSkill := func(skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return
		}
		if _, ok := seen[skill]; ok {
			return
		}
		seen[skill] = struct{}{}
		merged = append(merged, skill)
	}

	for _, skill := range selected {
		appendSkill(skill)
	}
	for _, skill := range strings.Split(custom, ",") {
		appendSkill(skill)
	}
	return merged
}

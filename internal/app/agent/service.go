package agent

var catalog = []Agent{
	{ID: "agent-beginner", Skill: "beginner", ModelVersion: "v1", Description: "Beginner agent"},
	{ID: "agent-intermediate", Skill: "intermediate", ModelVersion: "v1", Description: "Intermediate agent"},
	{ID: "agent-advanced", Skill: "advanced", ModelVersion: "v1", Description: "Advanced agent"},
}

// Catalog lists the agents a session can be started against. The returned
// slice is a copy.
func Catalog() []Agent {
	out := make([]Agent, len(catalog))
	copy(out, catalog)
	return out
}

func BySkill(skill string) (Agent, bool) {
	for _, a := range catalog {
		if a.Skill == skill {
			return a, true
		}
	}
	return Agent{}, false
}

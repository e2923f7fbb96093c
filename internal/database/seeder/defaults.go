package seeder

// Defaults seeds demo companies. Pass a scorer to also seed scored demo jobs.
func Defaults(scorer Scorer) []Seeder {
	out := []Seeder{CompaniesSeeder{}}
	if scorer != nil {
		out = append(out, JobsSeeder{Scorer: scorer})
	}
	return out
}

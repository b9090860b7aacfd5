package workouts

// DefaultWorkouts is the built-in progression tree, five levels from
// warm-ups to full-body challenges.
func DefaultWorkouts() []Workout {
	return []Workout{
		// level 1 - intro
		{ID: "dynamicstretch", Name: "Dynamic Stretch", LevelRequired: 1, Order: 0},
		{ID: "armcircles", Name: "Arm Circles", LevelRequired: 1, Order: 1},
		{ID: "highknees", Name: "High Knees", LevelRequired: 1, Order: 2},

		// level 2 - strength foundation
		{ID: "pushups", Name: "Push-Ups", LevelRequired: 2, Prerequisites: []string{"dynamicstretch", "armcircles", "highknees"}},

		// level 3 - core & legs
		{ID: "squats", Name: "Squats", LevelRequired: 3, Prerequisites: []string{"pushups"}, Order: 0},
		{ID: "planks", Name: "Planks", LevelRequired: 3, Prerequisites: []string{"pushups"}, Order: 1},

		// level 4 - conditioning
		{ID: "lunges", Name: "Lunges", LevelRequired: 4, Prerequisites: []string{"squats"}, Order: 0},
		{ID: "jumpingjacks", Name: "Jumping Jacks", LevelRequired: 4, Prerequisites: []string{"squats"}, Order: 1},
		{ID: "situps", Name: "Sit-Ups", LevelRequired: 4, Prerequisites: []string{"planks"}, Order: 2},
		{ID: "mountainclimbers", Name: "Mountain Climbers", LevelRequired: 4, Prerequisites: []string{"planks"}, Order: 3},

		// level 5 - challenge
		{ID: "burpees", Name: "Burpees", LevelRequired: 5, Prerequisites: []string{"lunges", "jumpingjacks"}, Order: 0},
		{ID: "pullups", Name: "Pull-Ups", LevelRequired: 5, Prerequisites: []string{"situps", "mountainclimbers"}, Order: 1},
	}
}

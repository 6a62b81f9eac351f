package memory

import "aeroedu-service/internal/domain"

// DefaultCatalog is the built-in three-module learning catalog, used when no
// Postgres content store is configured.
func DefaultCatalog() map[int]domain.LearningModule {
	return map[int]domain.LearningModule{
		1: {
			ID:          1,
			Title:       "Aerospace Engineering Basics",
			Subtitle:    "The Foundation of Flight",
			Description: "Discover the fundamental principles of flight: lift, thrust, drag, and weight. Learn how aerospace engineers design aircraft and spacecraft.",
			Duration:    15,
			XPReward:    100,
			ImageURL:    "https://images.unsplash.com/photo-1581833971358-2c8b550f87b3?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Sections: []domain.ModuleSection{
				{
					ID:          "intro",
					Title:       "What is Aerospace Engineering?",
					Content:     "Aerospace engineering is the field that designs, builds, and tests aircraft and spacecraft. Engineers in this field solve complex problems to help humans fly through the atmosphere and explore space.",
					ImageURL:    "https://images.unsplash.com/photo-1559827260-dc66d52bef19?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&h=600",
					Interactive: true,
				},
				{
					ID:          "forces",
					Title:       "Four Forces of Flight",
					Content:     "Every aircraft in flight experiences four fundamental forces: lift (upward), weight (downward), thrust (forward), and drag (backward). Understanding these forces is crucial for flight.",
					Interactive: true,
				},
			},
			Quiz: []domain.QuizQuestion{
				{
					ID:           "q1",
					Prompt:       "Which force opposes the motion of an aircraft?",
					Options:      []string{"Lift", "Thrust", "Drag", "Weight"},
					CorrectIndex: 2,
					Explanation:  "Drag is the force that opposes aircraft motion through the air.",
				},
				{
					ID:           "q2",
					Prompt:       "What force must overcome weight for an aircraft to fly?",
					Options:      []string{"Drag", "Thrust", "Lift", "Gravity"},
					CorrectIndex: 2,
					Explanation:  "Lift is the upward force that must overcome weight (gravity) for flight.",
				},
			},
		},
		2: {
			ID:          2,
			Title:       "How Rockets Work",
			Subtitle:    "Principles of Space Propulsion",
			Description: "Explore rocket anatomy, launch stages, and propulsion systems. Understand thrust vector control and how rockets navigate in space.",
			Duration:    20,
			XPReward:    150,
			ImageURL:    "https://images.unsplash.com/photo-1517976487492-5750f3195933?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Sections: []domain.ModuleSection{
				{
					ID:          "anatomy",
					Title:       "Rocket Anatomy",
					Content:     "A rocket consists of several key components: nose cone for aerodynamics, payload bay for cargo, fuel tanks for propellant, engines for thrust, and fins for stability.",
					ImageURL:    "https://images.unsplash.com/photo-1517976487492-5750f3195933?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&h=600",
					Interactive: true,
				},
				{
					ID:          "stages",
					Title:       "Multi-Stage Rockets",
					Content:     "Most rockets use multiple stages that separate after their fuel is exhausted, making the remaining rocket lighter and more efficient.",
					Interactive: true,
				},
			},
			Quiz: []domain.QuizQuestion{
				{
					ID:           "q1",
					Prompt:       "What is the primary purpose of rocket fins?",
					Options:      []string{"Generate lift", "Store fuel", "Provide stability", "Create thrust"},
					CorrectIndex: 2,
					Explanation:  "Fins provide stability and help keep the rocket flying straight.",
				},
			},
		},
		3: {
			ID:          3,
			Title:       "Space Missions Through Time",
			Subtitle:    "History of Space Exploration",
			Description: "Journey through space exploration history from Sputnik to Artemis. Discover key missions and their impact on space technology.",
			Duration:    25,
			XPReward:    200,
			ImageURL:    "https://images.unsplash.com/photo-1446776653964-20c1d3a81b06?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400",
			Sections: []domain.ModuleSection{
				{
					ID:          "early-missions",
					Title:       "The Space Age Begins",
					Content:     "The space age began in 1957 with Sputnik 1, the first artificial satellite launched by the Soviet Union.",
					ImageURL:    "https://images.unsplash.com/photo-1614728263952-84ea256f9679?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&h=600",
					Interactive: true,
				},
				{
					ID:          "moon-landing",
					Title:       "Apollo Program",
					Content:     "NASA's Apollo program achieved the historic goal of landing humans on the Moon in 1969 with Apollo 11.",
					ImageURL:    "https://images.unsplash.com/photo-1446776653964-20c1d3a81b06?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&h=600",
					Interactive: true,
				},
			},
			Quiz: []domain.QuizQuestion{
				{
					ID:           "q1",
					Prompt:       "What was the first artificial satellite?",
					Options:      []string{"Explorer 1", "Sputnik 1", "Vanguard 1", "Luna 1"},
					CorrectIndex: 1,
					Explanation:  "Sputnik 1 was launched by the Soviet Union in 1957 as the first artificial satellite.",
				},
			},
		},
	}
}

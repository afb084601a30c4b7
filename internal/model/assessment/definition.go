package assessment

// CategorySets partitions scored categories for ratio sub-scores. Members
// that never appear in a session's answers simply contribute nothing.
type CategorySets struct {
	WholePlantFoods []string
	WaterHerbal     []string
	Beverages       []string
}

// Definition describes one conversational assessment served by the engine.
type Definition struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Catalog    Catalog
	Normalized bool // answers run through the frequency normalizer
	Scored     bool // finalization computes a ScoreResult
	Sets       CategorySets
	// System prompts handed to the phrasing collaborator.
	FirstTurnSystem string
	FollowUpSystem  string
}

// Store exposes definition retrieval for the engine and HTTP handlers.
type Store interface {
	List() []Definition
	FindByID(id string) (Definition, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Definition
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied definitions.
func NewMemoryStore(items []Definition) *MemoryStore {
	return &MemoryStore{items: append([]Definition(nil), items...)}
}

// List returns the seeded definition list.
func (s *MemoryStore) List() []Definition {
	return append([]Definition(nil), s.items...)
}

// FindByID looks up a definition by identifier.
func (s *MemoryStore) FindByID(id string) (Definition, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Definition{}, false
}

// Seed provides the two assessments shipped with the product: the dietary
// frequency screen and the program-eligibility intake.
func Seed() []Definition {
	return []Definition{
		{
			ID:         "dietary",
			Name:       "Diet Quality Assessment",
			Normalized: true,
			Scored:     true,
			Catalog: Catalog{
				Initial: []Question{
					{Key: "Fruits", Prompt: "How often per week do you eat fruits?", Examples: "e.g., apples, bananas, oranges", Verb: VerbEat},
					{Key: "Vegetables", Prompt: "How often per week do you eat vegetables?", Examples: "e.g., spinach, carrots, broccoli", Verb: VerbEat},
					{Key: "Water", Prompt: "How often per week do you drink water?", Examples: "e.g., plain water, mineral water", Verb: VerbDrink},
					{Key: "Herbal Beverages", Prompt: "How often per week do you drink herbal beverages?", Examples: "e.g., chamomile tea, peppermint tea", Verb: VerbDrink},
					{Key: "Sugar-sweetened Beverages", Prompt: "How often per week do you drink sugar-sweetened beverages?", Examples: "e.g., soda, sweetened iced tea", Verb: VerbDrink},
					{Key: "Red Meat", Prompt: "How often per week do you eat red meat?", Examples: "e.g., beef, lamb, pork", Verb: VerbEat},
					{Key: "Dairy", Prompt: "How often per week do you consume dairy?", Examples: "e.g., milk, cheese, yogurt", Verb: VerbEat},
				},
			},
			Sets: CategorySets{
				WholePlantFoods: []string{
					"Fruits", "Vegetables", "Whole Grains", "Legumes", "Nuts",
					"Plant-based Dairy Alternatives", "Fermented Foods",
				},
				WaterHerbal: []string{"Water", "Herbal Beverages", "Green Tea"},
				Beverages: []string{
					"Water", "Herbal Beverages", "Green Tea", "Coffee", "Alcohol",
					"Artificial Sweeteners", "Sugar-sweetened Beverages",
				},
			},
			FirstTurnSystem: `You are a friendly and professional diet assessment assistant for Wellchemy.

For the first question:
- Welcome the user warmly.
- Explain that this is a quick diet assessment that takes 3-5 minutes.
- Explain that they can answer with terms like "daily", "never", "occasionally", or a number of times per week.
- Make it clear there's no right or wrong answer.
- Be supportive and non-judgmental.`,
			FollowUpSystem: `You are a friendly diet assessment assistant for Wellchemy.

For follow-up questions:
- Be polite and professional.
- Do NOT reintroduce yourself.
- Do NOT re-explain how to answer.
- Simply ask how often they consume the food category.
- Be direct, short, and positive.`,
		},
		{
			ID:   "eligibility",
			Name: "Program Eligibility Intake",
			Catalog: Catalog{
				Initial: []Question{
					{Key: "zip", Label: "Zip Code", Prompt: "What is your zip code?"},
					{Key: "insurance_provider", Label: "Insurance Provider", Prompt: "Who is your health insurance provider?"},
				},
				TriggerKey: "insurance_provider",
				Branches: BranchTable{
					"abc": {
						{Key: "abc_member_id", Label: "ABC Member ID", Prompt: "What is your ABC member ID?"},
						{Key: "hospital_visits", Label: "Hospital Visits (Past 6 Months)", Prompt: "How many times have you been to the hospital in the past 6 months?"},
					},
					"florida blue": {
						{Key: "florida_blue_member_id", Label: "Florida Blue Member ID", Prompt: "What is your Florida Blue member ID number?"},
						{Key: "medications_per_day", Label: "Medications per Day", Prompt: "How many medications are you currently taking per day?"},
					},
				},
				Unbranch: []Question{
					{
						Key:      "chronic_conditions",
						Label:    "Chronic Conditions",
						Prompt:   "Please list any and all chronic conditions you currently have.",
						Examples: "e.g., high blood pressure, diabetes, cancer",
						Resource: "https://www.cdc.gov/chronicdisease/resources/publications/factsheets.htm",
					},
					{
						Key:      "dietary_restrictions",
						Label:    "Dietary Restrictions",
						Prompt:   "Please list any and all dietary restrictions you currently have.",
						Examples: "e.g., shellfish, tree nuts",
						Resource: "https://www.foodallergy.org/living-food-allergies/food-allergy-essentials/common-allergens",
					},
					{
						Key:    "delivery_address",
						Label:  "Delivery Address",
						Prompt: "What is your delivery address so we can be ready to send your food as soon as you are approved?",
					},
				},
			},
			FollowUpSystem: `You are a professional but friendly Eligibility Assessment Assistant for Wellchemy.

Do not skip or change the question meaning.`,
		},
	}
}

package llm

// BuildWeeklyMenuPrompt instructs the model to emit the day-indexed
// weekly menu JSON and nothing else. The schema here must stay in sync
// with menu.WeeklyMenu's wire shape.
func BuildWeeklyMenuPrompt(rawText string) string {
	return `You are a data extraction engine for institutional cafeteria menus.

Your task:
- Convert the menu text into STRICT JSON.
- Output MUST be valid JSON, starting with { and ending with }.
- NO explanations, NO markdown, NO comments, NO extra text.

If you cannot extract anything, return exactly: {}

Required JSON schema (keys are day indexes in order of appearance):
{
  "0": {
    "id": 0,
    "dayName": "Monday",
    "meals": [
      {
        "id": 0,
        "timeOfDay": "breakfast | brunch | lunch | dinner",
        "startTime": "11:20am",
        "endTime": "1pm",
        "courses": [
          {
            "id": 0,
            "courseType": "Entrée",
            "foodItems": "comma, joined, items"
          }
        ]
      }
    ]
  }
}

Rules:
- Day indexes follow the order days appear in the text, not calendar order.
- If a meal has no recognizable time-of-day word, use "lunch".
- If only one clock time is present, use it for both startTime and endTime.
- Drop disclaimer and legend text entirely.

MENU TEXT:
` + rawText
}

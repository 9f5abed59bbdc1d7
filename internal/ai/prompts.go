package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ParseCV string
	ForgeCV string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ParseCV string
	ForgeCV string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ParseCV: `You are an expert, precise CV parsing system. Your only task is to analyze raw CV text and convert it into a valid JSON object. Follow the comprehensive example provided exactly.
--- EXAMPLE START ---
CV TEXT:
'''
Alex Chen
London, UK • +44 123 456 7890 • alex.chen@email.com • linkedin.com/in/alexchen
AWARDS & VENTURES
Technology: 1st Place, National Cyber Challenge; Top 5%, Kaggle Data Science Bowl.
Business & Growth: Co-founded a social app, achieving 1M+ downloads.
EDUCATION
Imperial College London — MEng Computing (AI), 2024
EXPERIENCE
AI Research Intern, QuantumLeap AI, London, UK
June 2023 - September 2023
- Designed and implemented a novel reinforcement learning algorithm.
'''
JSON OUTPUT:
{
  "candidate_name": "Alex Chen",
  "contact": "+44 123 456 7890 | alex.chen@email.com | linkedin.com/in/alexchen",
  "education": "Imperial College London — MEng Computing (AI), 2024",
  "awards_leadership": {
      "Technology": "1st Place, National Cyber Challenge; Top 5%, Kaggle Data Science Bowl.",
      "Business & Growth": "Co-founded a social app, achieving 1M+ downloads."
  },
  "professional_history": [
    {
      "role": "AI Research Intern",
      "company": "QuantumLeap AI",
      "dates": "June 2023 - September 2023",
      "accomplishments": ["- Designed and implemented a novel reinforcement learning algorithm."]
    }
  ]
}
--- EXAMPLE END ---`,

	ForgeCV: `You are an ELITE career strategist. Your task is to analyze the provided data and generate a single JSON object to build a one-page CV.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ParseCV: `Now, apply the exact same thought process to the following CV text. Your output must be ONLY the final JSON object.
For the "awards_leadership" key, identify logical categories from the CV text and group achievements. If no awards are found, return an empty dictionary {}.
For "accomplishments", always return a list of strings.
--- ACTUAL CV TEXT TO PARSE ---
'''
%s
'''`,

	ForgeCV: `YOUR THOUGHT PROCESS (Mental Sandbox):
1. Analyze Target: Read the Target Job Description. Identify its core archetype from the Strategic Intelligence Matrix and extract the top 3-5 most critical keywords/skills.
2. Formulate Narrative: Based on this analysis, create a unique "Candidate Narrative."
3. Select Experiences: The two most recent roles (%s) are mandatory. From the rest of the Armory, select ONLY 2-3 additional experiences that most powerfully support the unique Candidate Narrative.
4. Weaponize Accomplishments: For every selected experience, rewrite the accomplishment bullet points to aggressively highlight the Key Skills and prove the Candidate Narrative.
FINAL OUTPUT: After your thought process, generate a single JSON object that executes your strategy.

NON-NEGOTIABLE RULES FOR THE JSON:
1. The "summary_text" MUST be a single, dense, one-line sentence that embodies the Candidate Narrative.
2. "professional_history" MUST include the mandatory latest two roles, plus your other strategic selections.
3. Each job in "professional_history" MUST have a maximum of TWO accomplishment bullet points as a list of strings.
4. For "awards_leadership", autonomously create 1-3 logical category names and group achievements from the Armory.

JSON OUTPUT STRUCTURE:
{
  "summary_text": "A powerful, tailored one-line summary.",
  "competencies": [ { "title": "...", "description": "..." } ],
  "professional_history": [ { "role": "...", "company": "...", "dates": "...", "accomplishments": ["...", "..."] } ],
  "awards_leadership": { "Category 1": "...", "Category 2": "..." }
}
[STRATEGIC INTELLIGENCE MATRIX]
%s
[THE ARMORY - VERIFIED CANDIDATE HISTORY]
%s
[TARGET JOB DESCRIPTION]
%s`,
}

// GetDefaultSystemPrompt returns the built-in system prompt for an operation
func GetDefaultSystemPrompt(operation string) string {
	switch operation {
	case OperationParse:
		return DefaultSystemPrompts.ParseCV
	case OperationForge:
		return DefaultSystemPrompts.ForgeCV
	default:
		return ""
	}
}

// GetDefaultUserPrompt returns the built-in user prompt template for an operation
func GetDefaultUserPrompt(operation string) string {
	switch operation {
	case OperationParse:
		return DefaultUserPrompts.ParseCV
	case OperationForge:
		return DefaultUserPrompts.ForgeCV
	default:
		return ""
	}
}

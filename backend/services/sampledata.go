package services

import (
	"nclexprep/backend/models"

	"gorm.io/gorm"
)

// Bundled demo pool: 19 questions across five client-needs topics, six of
// them NGN-format. Served by the repository when constructed with
// useSample=true, and used to seed test databases.

func SampleTopics() []models.Topic {
	return []models.Topic{
		{Model: gorm.Model{ID: 1}, Name: "Safety and Infection Control", Subtopics: []models.Subtopic{
			{Model: gorm.Model{ID: 1}, TopicID: 1, Name: "Standard Precautions"},
			{Model: gorm.Model{ID: 2}, TopicID: 1, Name: "Error Prevention"},
		}},
		{Model: gorm.Model{ID: 2}, Name: "Pharmacological Therapies", Subtopics: []models.Subtopic{
			{Model: gorm.Model{ID: 3}, TopicID: 2, Name: "Medication Administration"},
			{Model: gorm.Model{ID: 4}, TopicID: 2, Name: "Adverse Effects"},
		}},
		{Model: gorm.Model{ID: 3}, Name: "Physiological Adaptation", Subtopics: []models.Subtopic{
			{Model: gorm.Model{ID: 5}, TopicID: 3, Name: "Fluid and Electrolyte Imbalance"},
			{Model: gorm.Model{ID: 6}, TopicID: 3, Name: "Hemodynamics"},
		}},
		{Model: gorm.Model{ID: 4}, Name: "Health Promotion and Maintenance", Subtopics: []models.Subtopic{
			{Model: gorm.Model{ID: 7}, TopicID: 4, Name: "Developmental Stages"},
			{Model: gorm.Model{ID: 8}, TopicID: 4, Name: "Health Screening"},
		}},
		{Model: gorm.Model{ID: 5}, Name: "Psychosocial Integrity", Subtopics: []models.Subtopic{
			{Model: gorm.Model{ID: 9}, TopicID: 5, Name: "Coping Mechanisms"},
			{Model: gorm.Model{ID: 10}, TopicID: 5, Name: "Crisis Intervention"},
		}},
	}
}

func SampleQuestions() []models.Question {
	return []models.Question{
		{
			Model: gorm.Model{ID: 1}, TopicID: 1, SubtopicID: 1,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyEasy,
			Prompt:      "A nurse is caring for a client with Clostridioides difficile infection. Which type of precaution should the nurse implement?",
			Explanation: "C. difficile spores are transmitted by contact and are not killed by alcohol-based hand rubs; contact precautions with soap-and-water hand hygiene are required.",
			Citations:   "CDC Guideline for Isolation Precautions\nFundamentals of Nursing, Ch. 29",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Droplet precautions"},
				{Position: 1, Text: "Contact precautions", IsCorrect: true},
				{Position: 2, Text: "Airborne precautions"},
				{Position: 3, Text: "Protective environment"},
			},
		},
		{
			Model: gorm.Model{ID: 2}, TopicID: 1, SubtopicID: 1,
			Format: models.FormatSATA, Difficulty: models.DifficultyMedium,
			Prompt:      "Which actions by the nurse follow standard precautions? Select all that apply.",
			Explanation: "Standard precautions require hand hygiene before and after client contact and gloves for anticipated contact with body fluids. Recapping needles and reusing single-use equipment violate them.",
			Citations:   "CDC Standard Precautions for All Patient Care",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Performing hand hygiene before donning gloves", IsCorrect: true},
				{Position: 1, Text: "Recapping a used needle before disposal"},
				{Position: 2, Text: "Wearing gloves when emptying a urinary drainage bag", IsCorrect: true},
				{Position: 3, Text: "Reusing a single-use suction catheter after rinsing"},
				{Position: 4, Text: "Discarding fluid-soiled gauze in a biohazard container", IsCorrect: true},
			},
		},
		{
			Model: gorm.Model{ID: 3}, TopicID: 1, SubtopicID: 2,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyEasy,
			Prompt:      "Before administering a medication, which identifiers should the nurse use to verify the client's identity?",
			Explanation: "Two client identifiers, typically full name and date of birth, are compared against the medication administration record. Room number is never an identifier.",
			Citations:   "The Joint Commission National Patient Safety Goals",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Room number and name"},
				{Position: 1, Text: "Name and date of birth", IsCorrect: true},
				{Position: 2, Text: "Bed number and diagnosis"},
				{Position: 3, Text: "Name and diagnosis"},
			},
		},
		{
			Model: gorm.Model{ID: 4}, TopicID: 2, SubtopicID: 3,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyMedium,
			Prompt:      "A client is prescribed enoxaparin subcutaneously. Which site should the nurse select?",
			Explanation: "Enoxaparin is injected into the anterolateral abdominal wall at least two inches from the umbilicus to reduce bruising and ensure absorption.",
			Citations:   "Pharmacology for Nurses, Ch. 34",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Deltoid muscle"},
				{Position: 1, Text: "Dorsogluteal site"},
				{Position: 2, Text: "Anterolateral abdomen", IsCorrect: true},
				{Position: 3, Text: "Inner forearm"},
			},
		},
		{
			Model: gorm.Model{ID: 5}, TopicID: 2, SubtopicID: 3,
			Format: models.FormatSATA, Difficulty: models.DifficultyHard,
			Prompt:      "The nurse is preparing to administer digoxin. Which assessments are required before giving the dose? Select all that apply.",
			Explanation: "An apical pulse below 60/min and signs of toxicity (anorexia, visual changes) warrant holding digoxin; potassium is checked because hypokalemia potentiates toxicity.",
			Citations:   "Davis's Drug Guide, digoxin monograph",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Apical pulse for one full minute", IsCorrect: true},
				{Position: 1, Text: "Serum potassium level", IsCorrect: true},
				{Position: 2, Text: "Pupillary response"},
				{Position: 3, Text: "Reports of nausea or visual disturbances", IsCorrect: true},
				{Position: 4, Text: "Capillary refill in the lower extremities"},
			},
		},
		{
			Model: gorm.Model{ID: 6}, TopicID: 2, SubtopicID: 4,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyMedium,
			Prompt:      "A client taking lisinopril reports a persistent dry cough. What is the nurse's best action?",
			Explanation: "A dry cough is a known effect of ACE inhibitors caused by bradykinin accumulation; the provider is notified so an alternative such as an ARB can be considered.",
			Citations:   "Lehne's Pharmacology for Nursing Care, Ch. 44",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Administer an antitussive as needed"},
				{Position: 1, Text: "Tell the client the cough will resolve within a week"},
				{Position: 2, Text: "Notify the provider and anticipate a medication change", IsCorrect: true},
				{Position: 3, Text: "Hold the next dose and reassess in the morning"},
			},
		},
		{
			Model: gorm.Model{ID: 7}, TopicID: 3, SubtopicID: 5,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyMedium,
			Prompt:      "Which finding should the nurse expect in a client with a serum potassium of 2.9 mEq/L?",
			Explanation: "Hypokalemia produces muscle weakness, hypoactive bowel sounds, and a flattened T wave on ECG.",
			Citations:   "Medical-Surgical Nursing, Ch. 13",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Peaked T waves"},
				{Position: 1, Text: "Muscle weakness and hypoactive bowel sounds", IsCorrect: true},
				{Position: 2, Text: "Hyperactive deep tendon reflexes"},
				{Position: 3, Text: "Kussmaul respirations"},
			},
		},
		{
			Model: gorm.Model{ID: 8}, TopicID: 3, SubtopicID: 5,
			Format: models.FormatSATA, Difficulty: models.DifficultyHard,
			Prompt:      "A client with heart failure is receiving furosemide. Which findings indicate the therapy is effective? Select all that apply.",
			Explanation: "Effective diuresis reduces preload: weight falls, crackles clear, and jugular venous distention resolves. Potassium loss is an adverse effect, not effectiveness.",
			Citations:   "Medical-Surgical Nursing, Ch. 35",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Weight loss of 1 kg overnight", IsCorrect: true},
				{Position: 1, Text: "Clearing lung sounds", IsCorrect: true},
				{Position: 2, Text: "Serum potassium of 3.1 mEq/L"},
				{Position: 3, Text: "Decreased jugular venous distention", IsCorrect: true},
				{Position: 4, Text: "Urine output of 20 mL/hr"},
			},
		},
		{
			Model: gorm.Model{ID: 9}, TopicID: 3, SubtopicID: 6,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyHard,
			Prompt:      "A client in hypovolemic shock has a MAP of 58 mm Hg. Which intervention should the nurse perform first?",
			Explanation: "Restoring circulating volume with isotonic crystalloids is the priority in hypovolemic shock; vasopressors are ineffective against an empty vascular bed.",
			Citations:   "Critical Care Nursing, Ch. 11",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Start an infusion of 0.9% sodium chloride", IsCorrect: true},
				{Position: 1, Text: "Prepare a norepinephrine infusion"},
				{Position: 2, Text: "Place the client in high Fowler's position"},
				{Position: 3, Text: "Administer a PRN dose of furosemide"},
			},
		},
		{
			Model: gorm.Model{ID: 10}, TopicID: 4, SubtopicID: 7,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyEasy,
			Prompt:      "The parent of a 9-month-old asks what developmental skill to expect next. Which milestone should the nurse describe?",
			Explanation: "Pulling to stand and cruising along furniture typically emerge between 9 and 12 months.",
			Citations:   "Wong's Nursing Care of Infants and Children, Ch. 10",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Walking up stairs with alternating feet"},
				{Position: 1, Text: "Pulling to a standing position", IsCorrect: true},
				{Position: 2, Text: "Speaking in two-word sentences"},
				{Position: 3, Text: "Riding a tricycle"},
			},
		},
		{
			Model: gorm.Model{ID: 11}, TopicID: 4, SubtopicID: 8,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyMedium,
			Prompt:      "Which client statement indicates correct understanding of colorectal cancer screening?",
			Explanation: "Average-risk adults begin colonoscopy screening at age 45, repeated every 10 years when results are normal.",
			Citations:   "American Cancer Society screening guidelines",
			Options: []models.AnswerOption{
				{Position: 0, Text: "\"I'll need my first colonoscopy at 65.\""},
				{Position: 1, Text: "\"Screening starts at 45 and repeats every 10 years if normal.\"", IsCorrect: true},
				{Position: 2, Text: "\"A yearly chest x-ray screens for colon cancer.\""},
				{Position: 3, Text: "\"I only need screening if I have symptoms.\""},
			},
		},
		{
			Model: gorm.Model{ID: 12}, TopicID: 5, SubtopicID: 9,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyMedium,
			Prompt:      "A client recently diagnosed with cancer says, \"The lab must have mixed up my results.\" Which defense mechanism is the client using?",
			Explanation: "Refusing to acknowledge a painful reality is denial, a common first response to a serious diagnosis.",
			Citations:   "Psychiatric-Mental Health Nursing, Ch. 5",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Projection"},
				{Position: 1, Text: "Denial", IsCorrect: true},
				{Position: 2, Text: "Rationalization"},
				{Position: 3, Text: "Displacement"},
			},
		},
		{
			Model: gorm.Model{ID: 13}, TopicID: 5, SubtopicID: 10,
			Format: models.FormatMultipleChoice, Difficulty: models.DifficultyHard,
			Prompt:      "A client in the emergency department states, \"I have a plan to end my life tonight.\" What is the nurse's priority action?",
			Explanation: "A stated plan means imminent risk; constant observation is initiated before any further assessment or referral.",
			Citations:   "Psychiatric-Mental Health Nursing, Ch. 25",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Schedule an outpatient counseling referral"},
				{Position: 1, Text: "Place the client under one-to-one observation", IsCorrect: true},
				{Position: 2, Text: "Ask the family to stay with the client"},
				{Position: 3, Text: "Document the statement and reassess in one hour"},
			},
		},
		{
			Model: gorm.Model{ID: 14}, TopicID: 2, SubtopicID: 4, IsNGN: true,
			Format: models.FormatMatrix, Difficulty: models.DifficultyHard,
			Prompt:      "A client on vancomycin has a trough of 28 mcg/mL and rising creatinine. For each finding, indicate whether it is consistent with vancomycin toxicity: flushing of the neck, decreased urine output, tinnitus.",
			Explanation: "An elevated trough with rising creatinine signals nephrotoxicity; ototoxicity presents as tinnitus. Flushing during infusion reflects rate-related histamine release, not toxicity from accumulation.",
			Citations:   "Lehne's Pharmacology for Nursing Care, Ch. 84",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Flushing of the neck — consistent"},
				{Position: 1, Text: "Decreased urine output — consistent", IsCorrect: true, CreditWeight: 0.5},
				{Position: 2, Text: "Tinnitus — consistent", IsCorrect: true, CreditWeight: 0.5},
			},
		},
		{
			Model: gorm.Model{ID: 15}, TopicID: 3, SubtopicID: 6, IsNGN: true,
			Format: models.FormatBowTie, Difficulty: models.DifficultyHard,
			Prompt:      "A postoperative client is restless with BP 84/50, HR 128, and saturated abdominal dressing. Identify the condition the client is most likely experiencing and the two actions to take first.",
			Explanation: "The presentation is hemorrhagic shock: apply pressure to the site and increase the isotonic infusion while notifying the surgeon.",
			Citations:   "Critical Care Nursing, Ch. 11",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Condition: hemorrhagic shock", IsCorrect: true, CreditWeight: 0.4},
				{Position: 1, Text: "Action: apply pressure to the surgical site", IsCorrect: true, CreditWeight: 0.3},
				{Position: 2, Text: "Action: increase the isotonic fluid rate", IsCorrect: true, CreditWeight: 0.3},
				{Position: 3, Text: "Condition: neurogenic shock"},
				{Position: 4, Text: "Action: administer a beta blocker"},
			},
		},
		{
			Model: gorm.Model{ID: 16}, TopicID: 1, SubtopicID: 2, IsNGN: true,
			Format: models.FormatHotSpot, Difficulty: models.DifficultyMedium,
			Prompt:      "Highlight the findings in the nurses' note that require immediate follow-up: \"Client returned from PACU at 1400. Drowsy but arousable. Respirations 8/min and shallow. Pain 2/10. Oxygen saturation 89% on room air.\"",
			Explanation: "A respiratory rate of 8/min with shallow effort and saturation of 89% indicates opioid-related respiratory depression requiring immediate intervention.",
			Citations:   "Medical-Surgical Nursing, Ch. 19",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Drowsy but arousable"},
				{Position: 1, Text: "Respirations 8/min and shallow", IsCorrect: true, CreditWeight: 0.5},
				{Position: 2, Text: "Pain 2/10"},
				{Position: 3, Text: "Oxygen saturation 89% on room air", IsCorrect: true, CreditWeight: 0.5},
			},
		},
		{
			Model: gorm.Model{ID: 17}, TopicID: 3, SubtopicID: 5, IsNGN: true,
			Format: models.FormatMatrix, Difficulty: models.DifficultyHard,
			Prompt:      "A client with DKA is receiving an insulin infusion. For each order, specify whether it is anticipated or contraindicated: IV potassium when K+ is 3.4 mEq/L, switching to D5 1/2 NS when glucose reaches 250 mg/dL, stopping insulin when glucose reaches 180 mg/dL.",
			Explanation: "Potassium replacement and adding dextrose at 250 mg/dL are anticipated; insulin continues until the anion gap closes, so stopping at 180 mg/dL is contraindicated.",
			Citations:   "Medical-Surgical Nursing, Ch. 51",
			Options: []models.AnswerOption{
				{Position: 0, Text: "IV potassium at K+ 3.4 — anticipated", IsCorrect: true, CreditWeight: 0.34},
				{Position: 1, Text: "Dextrose fluids at glucose 250 — anticipated", IsCorrect: true, CreditWeight: 0.33},
				{Position: 2, Text: "Stop insulin at glucose 180 — anticipated"},
			},
		},
		{
			Model: gorm.Model{ID: 18}, TopicID: 4, SubtopicID: 8, IsNGN: true,
			Format: models.FormatOrderedResponse, Difficulty: models.DifficultyMedium,
			Prompt:      "Place the steps for obtaining a wound culture in the correct order: cleanse the wound with saline, don clean gloves, rotate the swab over viable tissue, label the specimen at the bedside.",
			Explanation: "Gloves first, then cleansing removes surface contaminants, the swab samples viable tissue, and labeling at the bedside prevents misidentification.",
			Citations:   "Fundamentals of Nursing, Ch. 48",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Don clean gloves (step 1)", IsCorrect: true, CreditWeight: 0.25},
				{Position: 1, Text: "Cleanse the wound with saline (step 2)", IsCorrect: true, CreditWeight: 0.25},
				{Position: 2, Text: "Rotate the swab over viable tissue (step 3)", IsCorrect: true, CreditWeight: 0.25},
				{Position: 3, Text: "Label the specimen at the bedside (step 4)", IsCorrect: true, CreditWeight: 0.25},
			},
		},
		{
			Model: gorm.Model{ID: 19}, TopicID: 5, SubtopicID: 10, IsNGN: true,
			Format: models.FormatSATA, Difficulty: models.DifficultyHard,
			Prompt:      "A client experiencing an acute panic attack is hyperventilating in the hallway. Which interventions are appropriate? Select all that apply.",
			Explanation: "Staying with the client, moving to a quiet area, and giving short directions in a calm voice reduce stimulation. Detailed explanations and group activities escalate panic.",
			Citations:   "Psychiatric-Mental Health Nursing, Ch. 15",
			Options: []models.AnswerOption{
				{Position: 0, Text: "Stay with the client", IsCorrect: true},
				{Position: 1, Text: "Guide the client to a quiet area", IsCorrect: true},
				{Position: 2, Text: "Explain the physiology of panic in detail"},
				{Position: 3, Text: "Use short, simple directions", IsCorrect: true},
				{Position: 4, Text: "Encourage joining the current group session"},
			},
		},
	}
}

// SeedSampleData loads the bundled pool into a database. Used by the test
// setup and by first-run provisioning against an empty schema.
func SeedSampleData(db *gorm.DB) error {
	for _, topic := range SampleTopics() {
		if err := db.FirstOrCreate(&topic, models.Topic{Model: topic.Model}).Error; err != nil {
			return err
		}
	}
	for _, question := range SampleQuestions() {
		q := question
		for i := range q.Options {
			q.Options[i].QuestionID = q.ID
		}
		if err := db.FirstOrCreate(&q, models.Question{Model: q.Model}).Error; err != nil {
			return err
		}
	}
	return nil
}

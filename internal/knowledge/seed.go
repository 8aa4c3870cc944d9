package knowledge

func init() {
	kb = buildBase(seedEntries, generalAdvice,
		"CogniWise Scan provides initial screening. It is not a medical diagnosis.")
}

var generalAdvice = []string{
	"Always consult with a healthcare professional for a formal diagnosis.",
	"If you or a loved one is in crisis, seek immediate help.",
	"Healthy lifestyle choices (sleep, diet, exercise) benefit brain health.",
	"Stay socially active and mentally engaged.",
}

var seedEntries = []Entry{
	{
		Condition:   "adhd",
		Description: "Attention Deficit Hyperactivity Disorder (ADHD) is a neurodevelopmental condition affecting both children and adults. It varies from person to person but typically involves persistent patterns of inattention, hyperactivity, and impulsivity.",
		Symptoms: []Section{
			{AgeGroup: "child", Items: []string{
				"Difficulty sustaining attention in tasks or play",
				"Does not seem to listen when spoken to directly",
				"Fails to finish schoolwork or chores",
				"Difficulty organizing tasks and activities",
				"Avoids tasks requiring sustained mental effort",
				"Fidgets with hands or feet or squirms in seat",
				"Runs about or climbs in inappropriate situations",
			}},
			{AgeGroup: "adult", Items: []string{
				"Poor time management and problems prioritizing",
				"Frequent mood swings and irritability",
				"Difficulty coping with stress",
				"Impulsiveness in spending or decision making",
				"Restlessness and edginess",
				"Problems continuing and finishing tasks",
			}},
		},
		Advice: []Section{
			{AgeGroup: "child", Items: []string{
				"Establish a consistent daily routine.",
				"Break tasks into smaller, manageable chunks.",
				"Use visual aids like charts and checklists.",
				"Reward positive behavior immediately.",
				"Limit screen time and encourage physical activity.",
				"Work closely with teachers to support learning.",
			}},
			{AgeGroup: "adult", Items: []string{
				"Use planners, calendars, and reminders.",
				"Break large projects into small steps.",
				"Organize your workspace to minimize distractions.",
				"Practice mindfulness and stress-reduction techniques.",
				"Exercise regularly to burn off excess energy.",
				"Consider cognitive behavioral therapy (CBT).",
			}},
		},
	},
	{
		Condition:   "asd",
		Description: "Autism Spectrum Disorder (ASD) is a developmental disability caused by differences in the brain. People with ASD often have problems with social communication and interaction, and restricted or repetitive behaviors or interests.",
		Symptoms: []Section{
			{AgeGroup: "child", Items: []string{
				"Avoids eye contact",
				"Does not respond to name by 9 months",
				"Does not show facial expressions like happy, sad, angry",
				"Lines up toys or other objects and gets upset when changed",
				"Repeats words or phrases over and over (echolalia)",
				"Plays with toys the same way every time",
				"Focuses on parts of objects (e.g., wheels)",
			}},
			{AgeGroup: "adult", Items: []string{
				"Difficulty understanding what others are thinking or feeling",
				"Getting very anxious about social situations",
				"Finding it hard to make friends or preferring to be on your own",
				"Seeming blunt, rude or uninterested in others without meaning to",
				"Finding it hard to say how you feel",
				"Taking things very literally (difficulty with sarcasm)",
			}},
		},
		Advice: []Section{
			{AgeGroup: "child", Items: []string{
				"Early intervention is key (speech, occupational therapy).",
				"Use visual supports for communication.",
				"Create a safe, quiet space for downtime.",
				"Prepare for transitions in advance.",
				"Join support groups for parents.",
				"Focus on the child's strengths and interests.",
			}},
			{AgeGroup: "adult", Items: []string{
				"Learn about social norms and cues explicitly.",
				"Find a job that aligns with your strengths and interests.",
				"Join social groups with shared interests.",
				"Use noise-canceling headphones if sensitive to sound.",
				"Stick to a routine that works for you.",
				"Consider therapy to help with anxiety or depression.",
			}},
		},
	},
	{
		Condition:   "dementia",
		Description: "Dementia is a general term for loss of memory, language, problem-solving and other thinking abilities that are severe enough to interfere with daily life. Alzheimer's is the most common cause.",
		Symptoms: []Section{
			{AgeGroup: "elderly", Items: []string{
				"Memory loss that disrupts daily life",
				"Challenges in planning or solving problems",
				"Difficulty completing familiar tasks",
				"Confusion with time or place",
				"Trouble understanding visual images and spatial relationships",
				"New problems with words in speaking or writing",
				"Misplacing things and losing the ability to retrace steps",
				"Decreased or poor judgment",
				"Withdrawal from work or social activities",
				"Changes in mood and personality",
			}},
		},
		Advice: []Section{
			{AgeGroup: "elderly", Items: []string{
				"Establish a daily routine to reduce confusion.",
				"Safety-proof the home (remove tripping hazards, install grab bars).",
				"Use simple, clear communication.",
				"Break tasks into simple steps.",
				"Encourage social interaction and mental stimulation.",
				"Ensure regular physical activity and a healthy diet.",
				"Consult a neurologist for proper diagnosis and management.",
				"Caregivers should seek support and respite care.",
			}},
		},
	},
}

package ai

import (
	"fmt"
	"strings"
)

func (p DoubtAnswer) UserPrompt() string {
	var b strings.Builder

	b.WriteString("Question: " + p.Title + "\n")
	b.WriteString("Description: " + p.Description + "\n")
	b.WriteString("Category: " + p.Category + "\n")
	b.WriteString("\n")
	b.WriteString("Please provide a helpful answer to this student's doubt.")

	return b.String()
}

func (p MentorMatch) UserPrompt() string {
	var b strings.Builder

	b.WriteString("Student Profile:\n")
	b.WriteString("- Skills: " + joinOr(p.StudentSkills, notSpecified) + "\n")
	b.WriteString("- Interests: " + joinOr(p.StudentInterests, notSpecified) + "\n")
	b.WriteString("- Career Goals: " + p.CareerGoals + "\n")
	b.WriteString("- Branch: " + p.Branch + "\n")
	b.WriteString("- Year: " + p.Year + "\n")
	b.WriteString("\n")

	b.WriteString("Available Mentors:\n")
	b.WriteString(p.Mentors)
	b.WriteString("\n\n")

	b.WriteString("Recommend the top 3 most suitable mentors with brief reasoning for each match. ")
	b.WriteString(`Return as JSON array with format: [{"mentorId": "id", "name": "name", "matchScore": 95, "reason": "brief reason"}]`)

	return b.String()
}

func (p SessionSummary) UserPrompt() string {
	var b strings.Builder

	b.WriteString("Session Details:\n")
	b.WriteString("- Mentor: " + p.MentorName + "\n")
	b.WriteString("- Student: " + p.StudentName + "\n")
	b.WriteString("- Topic: " + p.Topic + "\n")
	b.WriteString("- Duration: " + p.Duration + " minutes\n")
	b.WriteString("- Session Notes: " + p.Notes + "\n")
	b.WriteString("- Date: " + p.Date + "\n")
	b.WriteString("\n")

	b.WriteString("Generate a professional session summary including:\n")
	for i, section := range []string{
		"Key Discussion Points",
		"Learning Outcomes",
		"Action Items",
		"Next Steps",
		"Certificate-worthy summary (1 paragraph)",
	} {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, section)
	}

	return b.String()
}

func (p CareerRoadmap) UserPrompt() string {
	var b strings.Builder

	b.WriteString("Student Details:\n")
	b.WriteString("- Year: " + p.Year + "\n")
	b.WriteString("- Branch: " + p.Branch + "\n")
	b.WriteString("- Current Skills: " + joinOr(p.Skills, beginnerSkills) + "\n")
	b.WriteString("- Career Goal: " + p.CareerGoal + "\n")
	b.WriteString("- Target Companies: " + joinOr(p.TargetCompanies, topTechCompanies) + "\n")
	b.WriteString("\n")
	b.WriteString("Create a detailed career roadmap with monthly/quarterly milestones, recommended resources, and key skills to develop.")

	return b.String()
}

func (p ContentModeration) UserPrompt() string {
	var b strings.Builder

	b.WriteString("Analyze this content for any issues:\n")
	b.WriteString("Title: " + p.Title + "\n")
	b.WriteString("Content: " + p.Content + "\n")
	b.WriteString("\n")
	b.WriteString("Check for: harassment, bullying, spam, inappropriate language, off-topic content")

	return b.String()
}

func (p CertificateText) UserPrompt() string {
	var b strings.Builder

	b.WriteString("Generate a professional certificate description for:\n")
	b.WriteString("- Name: " + p.Name + "\n")
	b.WriteString("- Role: " + p.Role + "\n")
	b.WriteString("- Achievement: " + p.Achievement + "\n")
	b.WriteString("- Hours: " + p.Hours + " hours of mentorship\n")
	b.WriteString("- Skills: " + joinOr(p.Skills, notSpecified) + "\n")
	b.WriteString("- Rating: " + p.Rating + "/5\n")
	b.WriteString("\n")
	b.WriteString("Create a 2-3 sentence certificate description suitable for LinkedIn and resumes.")

	return b.String()
}

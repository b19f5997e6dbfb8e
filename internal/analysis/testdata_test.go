package analysis

import "strings"

// fillerText returns n whitespace-separated words that match no taxonomy term,
// trend skill, section heading or weak phrase
func fillerText(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat("lorem ", n))
}

// sparseResume has Experience and Education headings, two technical terms,
// one action verb, no metrics, no soft skills, no bullets, no blank lines
// and no contact details. It is 350 words long
func sparseResume() string {
	words := []string{"Experience", "python", "docker", "developed", "Education"}
	return strings.Join(words, " ") + " " + fillerText(350-len(words))
}

const strongResume = `Jane Doe
jane.doe@example.com | 555-123-4567

Professional Summary
Senior engineer focused on scalability and distributed systems. Known for leadership,
communication and collaboration across teams.

Technical Skills
- Python, Golang, Kubernetes, Docker, PostgreSQL, AWS, Terraform
- Generative AI and Machine Learning pipelines

Experience
• Architected microservices that increased throughput by 40%
• Developed and launched a billing platform used by 2 million users
• Implemented CI/CD automation that reduced deploy time by 60%
• Optimized query paths and managed a team of five
• Designed and built an internal observability stack

Education
B.Sc. Computer Science
`

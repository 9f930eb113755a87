package domain

import "fmt"

// Fallback returns the local question set for the request's category. It
// always holds at least one question.
func Fallback(r Request) []Question {
	switch r.Category {
	case "coding":
		tech := "a modern framework"
		if len(r.TechStack) > 0 {
			tech = r.TechStack[0]
		}
		return []Question{{
			Question: fmt.Sprintf("What is a key benefit of using %s in development?", tech),
			Options: []string{
				"Faster development time",
				"Better performance",
				"Cross-platform compatibility",
				"All of the above",
			},
			CorrectAnswer: 3,
			Explanation:   "Modern frameworks typically offer multiple benefits including speed, performance, and cross-platform capabilities.",
		}}
	case "career":
		return []Question{{
			Question: "What is most important when building your professional network?",
			Options: []string{
				"Having many connections",
				"Building genuine relationships",
				"Only connecting with senior people",
				"Focusing solely on your industry",
			},
			CorrectAnswer: 1,
			Explanation:   "Quality relationships built on mutual value and genuine interest are more valuable than quantity.",
		}}
	case "startup":
		return []Question{{
			Question: "What should be the primary focus in early startup stages?",
			Options: []string{
				"Raising lots of funding",
				"Building a perfect product",
				"Finding product-market fit",
				"Hiring many employees",
			},
			CorrectAnswer: 2,
			Explanation:   "Product-market fit is crucial for startup success and should be the primary focus before scaling.",
		}}
	default:
		return []Question{{
			Question: fmt.Sprintf("Based on the video %q, what is the most important takeaway?", r.Title),
			Options: []string{
				"Understanding the basic concepts",
				"Implementing best practices",
				"Avoiding common mistakes",
				"All of the above",
			},
			CorrectAnswer: 3,
			Explanation:   "Good educational content typically covers concepts, practices, and common pitfalls.",
		}}
	}
}

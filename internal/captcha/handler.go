package captcha

import "github.com/gofiber/fiber/v2"

type ChallengeResponse struct {
	Challenge
	Question string `json:"question"`
}

// GET /api/public/captcha
func IssueHandler(g *Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ch, err := g.Issue(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(ChallengeResponse{Challenge: ch, Question: ch.Question()})
	}
}

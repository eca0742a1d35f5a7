package server

import "github.com/gofiber/fiber/v2"

type AboutResponse struct {
	Name        string `json:"name"`
	Slogan      string `json:"slogan"`
	Established int    `json:"established"`
	Description string `json:"description"`
}

var about = AboutResponse{
	Name:        "Thunder Cargo",
	Slogan:      "Reach Light Speed with Thunder Cargo",
	Established: 2025,
	Description: "Thunder Cargo was born from a vision to redefine modern logistics. " +
		"We combine modern technology with a robust network to deliver your shipments " +
		"with speed and precision. Whether it's local distribution or long-distance transit, " +
		"our mission is to bridge distances reliably and efficiently.",
}

// GET /api/public/about
func AboutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(about)
	}
}

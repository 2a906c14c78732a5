// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "surafit/internal/models"

// Placeholder content shown on public pages when the backend is empty or
// unreachable.

// FallbackOffer is the offer banner shown when no active offer exists.
var FallbackOffer = models.Offer{
	Title:       "Limited Time Offer",
	Description: "Get 30% off your first month - No hidden charges, cancel anytime",
	CTA:         "Claim Offer",
	IsActive:    true,
}

// FallbackTestimonials are shown when the testimonials table is empty.
var FallbackTestimonials = []models.Testimonial{
	{Name: "Meera Sharma", Role: "Working Mom", Rating: 5, Avatar: "👩‍💼",
		Content: "I finally found a coach who understands busy life. The programs are flexible and the nutrition advice respects my culture. Life-changing!"},
	{Name: "Amit Patel", Role: "IT Professional", Rating: 5, Avatar: "👨‍💻",
		Content: "After years of gym memberships, this personalized approach actually works. No judgment, just support. Highly recommend."},
	{Name: "Deepika Verma", Role: "Entrepreneur", Rating: 5, Avatar: "👩‍🔬",
		Content: "The wellness mentoring helped me manage stress alongside fitness. This holistic approach is rare and exactly what I needed."},
	{Name: "Rohit Kumar", Role: "Corporate Executive", Rating: 5, Avatar: "👨‍💼",
		Content: "Digital support is seamless. Tracked progress, got real feedback, and stayed motivated throughout. Worth every rupee."},
}

// FallbackTransformations are shown when the gallery is empty. They carry
// no photos; the page draws a placeholder instead.
var FallbackTransformations = []models.Transformation{
	{Name: "Priya", Stats: "Lost 12kg", Duration: "3 months"},
	{Name: "Rajesh", Stats: "Gained Muscle Mass", Duration: "4 months"},
	{Name: "Anjali", Stats: "Improved Stamina", Duration: "3 months"},
}

// FallbackPrograms are shown when the programs table is empty.
var FallbackPrograms = []models.Program{
	{Icon: "🏃", Title: "Personalized Training", ColorGradient: "from-primary to-accent",
		Description: "Custom workout plans designed for your body, goals, and lifestyle. Progressive programming that adapts as you improve."},
	{Icon: "🥗", Title: "Nutrition Coaching", ColorGradient: "from-accent to-primary",
		Description: "Sustainable eating habits tailored to Indian cuisine preferences. No restrictive diets, just smart choices."},
	{Icon: "🧘", Title: "Wellness Mentoring", ColorGradient: "from-primary via-accent to-primary",
		Description: "Holistic approach covering stress management, sleep, and mental health alongside fitness."},
	{Icon: "📱", Title: "Digital Support", ColorGradient: "from-accent to-primary",
		Description: "Track progress, get guidance, and stay connected with your coach anytime, anywhere."},
	{Icon: "👥", Title: "Group Classes", ColorGradient: "from-primary to-accent",
		Description: "Community-based fitness sessions for motivation and accountability with like-minded individuals."},
	{Icon: "📊", Title: "Progress Tracking", ColorGradient: "from-accent to-primary",
		Description: "Detailed analytics and visual progress reports to keep you motivated and informed."},
}

// FallbackSuccessStories are the home page headline numbers when none are stored.
var FallbackSuccessStories = []models.SuccessStory{
	{Stat: "500+", Label: "Happy Clients", Icon: "👥"},
	{Stat: "95%", Label: "Success Rate", Icon: "📈"},
	{Stat: "8+", Label: "Years Experience", Icon: "⭐"},
}

// FallbackBlogs are listed when no post is published. They have no ID and
// are not linked to a detail page.
var FallbackBlogs = []models.Blog{
	{Title: "5 Habits That Make Fat Loss Stick", Author: "Sura Fitness", ReadTime: "4 min read",
		Excerpt: "Small daily routines beat crash diets. Here are the five habits our clients keep long after their first program ends."},
	{Title: "Eating Well With Indian Home Food", Author: "Sura Fitness", ReadTime: "6 min read",
		Excerpt: "You do not need to give up roti and dal to reach your goals. Learn how to build balanced plates from the food you already love."},
	{Title: "Strength Training for Busy Professionals", Author: "Sura Fitness", ReadTime: "5 min read",
		Excerpt: "Three short sessions a week are enough to build strength. A simple plan for people who live in meetings."},
}

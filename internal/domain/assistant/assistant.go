package assistant

import (
	"regexp"
	"strings"
)

// Greeting opens every new conversation.
const Greeting = "Hi! Ask about appointment or admission process, or campus facilities."

// Fallback answers anything no rule matches.
const Fallback = "I'm here to help with appointments, admissions, and campus details. Try asking: 'admission process' or 'appointment booking'."

type rule struct {
	pattern *regexp.Regexp
	reply   string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{regexp.MustCompile(`appointment`), "To book an appointment, choose a department and pick a weekday date. You’ll receive confirmation and assigned slot soon."},
	{regexp.MustCompile(`admission`), "Admission process: apply online, submit required documents (10th/12th, TC, ID), and attend counselling. Our team will guide you throughout."},
	{regexp.MustCompile(`infrastructure|campus|classroom|lab|library`), "Our campus features smart classrooms, modern labs, a rich library, and conference halls supporting practical learning."},
	{regexp.MustCompile(`food|canteen|mess`), "Canteen offers hygienic, tasty food with multiple options for students throughout the day."},
	{regexp.MustCompile(`sport|game|ground|court|track`), "We support diverse sports with cricket ground, volleyball, badminton, tennis, basketball courts and an athletics track."},
	{regexp.MustCompile(`hostel`), "Separate hostels provide a safe, comfortable stay with essential amenities and study-friendly environment."},
	{regexp.MustCompile(`faculty|staff|teacher`), "Experienced and supportive faculty mentor students with a focus on fundamentals, projects, and placements."},
	{regexp.MustCompile(`contact|phone|email|map|address`), "Call: 044-26311045 | +91 70107 23984 • Email: gsbt@gsbt.edu.in • Address: Gojan College Road, Redhills, Chennai - 600052"},
}

// Reply returns the canned answer for a visitor message. Matching is
// case-insensitive via lowercasing, the way the original chat behaved.
func Reply(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if r.pattern.MatchString(lower) {
			return r.reply
		}
	}
	return Fallback
}

package chat

import "strings"

// fallbackReplies are served when the upstream model is unavailable. Keys are
// matched as substrings of the lowercased message, first hit wins.
var fallbackReplies = []struct {
	keyword string
	reply   string
}{
	{"check in", "To check in at an event, open the event page and enter the 6-character code shown by the organizer. Codes expire a few hours after they are generated."},
	{"checkin", "To check in at an event, open the event page and enter the 6-character code shown by the organizer. Codes expire a few hours after they are generated."},
	{"code", "Check-in codes are shown by the event organizer and expire a few hours after they are generated. If yours is rejected, ask an officer for a manual check-in."},
	{"leaderboard", "The leaderboard ranks active members by total points earned from event attendance. You can also sort it by events attended."},
	{"point", "You earn points by checking in at events. Each event lists how many points it is worth, and your running total appears on the leaderboard."},
	{"event", "Upcoming events are listed on the events page with their date, location, and point value. General body meetings are usually worth the most."},
	{"feedback", "You can send suggestions to the officer board from the feedback page. Submissions can be made anonymously."},
	{"join", "Membership is open to all students. Create an account with your school email and start attending events to earn points."},
}

const fallbackDefault = "I'm having trouble reaching the assistant right now. Try asking about events, check-ins, points, or the leaderboard, or reach out to an officer directly."

func fallbackReply(message string) string {
	lowered := strings.ToLower(message)
	for _, entry := range fallbackReplies {
		if strings.Contains(lowered, entry.keyword) {
			return entry.reply
		}
	}
	return fallbackDefault
}

// Package seed populates the database with test data for local development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"notewall/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	usernames = []string{
		"alex_writes", "sarah_notes", "mike_muses", "emma_ink", "john_jots",
		"lisa_lists", "david_drafts", "rachel_reads", "chris_quips", "jen_journals",
	}

	bios = []string{
		"Writing things down so I don't forget them 📝",
		"Collector of half-finished thoughts",
		"Notes, lists, and the occasional rant",
		"If it's not written down, it didn't happen",
		"Sharing what I learn, one note at a time 🌱",
		"Margins enthusiast",
		"Drafts forever, publish never",
		"Reading more than I write, barely",
		"Short notes, long tangents",
		"Daily journaling convert",
	}

	tagSeeds = []struct {
		name  string
		color string
	}{
		{"advice", "#4f46e5"},
		{"confession", "#dc2626"},
		{"gratitude", "#16a34a"},
		{"question", "#d97706"},
		{"story", "#0891b2"},
		{"vent", "#7c3aed"},
		{"recipe", "#65a30d"},
		{"til", "#db2777"},
	}

	noteTitles = []string{
		"The habit that finally stuck",
		"Something I wish I'd known at 20",
		"A small win today",
		"Why I stopped checking the news every hour",
		"My grandmother's soup, roughly",
		"On asking for help",
		"Things my first job taught me",
		"A question I keep coming back to",
		"The best advice I ever ignored",
		"Today I learned about sunk costs",
		"An apology I never sent",
		"What a long walk fixed",
	}

	noteContents = []string{
		"I've tried keeping a journal a dozen times. What finally worked was lowering the bar: one sentence a day, no exceptions, no catch-up entries.",
		"Nobody is keeping score except you. The people you're trying to impress are too busy worrying about who they're impressing.",
		"Fixed a bug today that had been open for three months. It was one line. It's always one line.",
		"Replaced the morning scroll with a paper book. Two weeks in and my attention span is noticeably less shredded.",
		"No measurements, she never used any. Onion, carrot, whatever bones you have, and more time than feels reasonable.",
		"Asking for help early feels like weakness and is actually the cheapest thing you will ever do. Learned this the hard way, twice.",
		"Show up on time, write things down, and never surprise your manager. Everything else is negotiable.",
		"If the thing you're avoiding took five minutes, would you still avoid it? Usually the answer tells me it was never about the time.",
		"Someone told me to save ten percent before anything else. I was 23 and knew better. I did not know better.",
		"Turns out continuing to do something because you've already invested in it is precisely the wrong reason. Applies to projects, jobs, and arguments.",
		"We stopped talking over something so small I can't even remember it properly. If you're reading this, odds are you aren't, but I'm sorry.",
		"Couldn't untangle a design problem all morning. Walked for an hour without my phone and the answer was waiting at the end of it.",
	}

	commentBodies = []string{
		"Needed to read this today, thank you.",
		"Same experience here, almost word for word.",
		"Respectfully disagree, but well put.",
		"Saving this one.",
		"The last line got me.",
		"Would love to hear more about this.",
		"This is why I keep coming back to this site.",
		"Short and true.",
	}
)

// Seeder seeds and clears notewall data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data in FK-safe order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")

	tables := []string{
		"votes", "reports", "notifications", "user_note_favorites",
		"comments", "note_tags", "notes", "tags", "users",
	}
	for _, t := range tables {
		if err := s.db.Exec("DELETE FROM " + t).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", t, err)
		}
	}
	return nil
}

// Run seeds users, tags, notes, comments, votes, and favorites.
func (s *Seeder) Run() error {
	log.Println("Starting database seeding...")

	users, err := s.createUsers()
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	tags, err := s.createTags()
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("Created %d tags", len(tags))

	notes, err := s.createNotes(users, tags)
	if err != nil {
		return fmt.Errorf("failed to create notes: %w", err)
	}
	log.Printf("Created %d notes", len(notes))

	commentCount, err := s.createComments(users, notes)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("Created %d comments", commentCount)

	voteCount, err := s.castVotes(users, notes)
	if err != nil {
		return fmt.Errorf("failed to cast votes: %w", err)
	}
	log.Printf("Cast %d votes", voteCount)

	favCount, err := s.addFavorites(users, notes)
	if err != nil {
		return fmt.Errorf("failed to add favorites: %w", err)
	}
	log.Printf("Added %d favorites", favCount)

	log.Println("Database seeding completed")
	return nil
}

func (s *Seeder) createUsers() ([]models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	users := make([]models.User, 0, len(usernames))
	for i, username := range usernames {
		user := models.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  string(hashed),
			FirstName: "Test",
			LastName:  fmt.Sprintf("User%d", i+1),
			Bio:       bios[i],
			IsActive:  true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createTags() ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tagSeeds))
	for _, t := range tagSeeds {
		tag := models.Tag{Name: t.name, ColorHex: t.color}
		if err := s.db.Create(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *Seeder) createNotes(users []models.User, tags []models.Tag) ([]models.Note, error) {
	notes := make([]models.Note, 0)

	for _, user := range users {
		numNotes := s.r.Intn(3) + 1

		for i := 0; i < numNotes; i++ {
			idx := s.r.Intn(len(noteTitles))
			note := models.Note{
				Title:       noteTitles[idx],
				Content:     noteContents[idx],
				UserID:      user.ID,
				IsAnonymous: s.r.Float32() < 0.25,
			}
			if err := s.db.Create(&note).Error; err != nil {
				return nil, err
			}

			// 1-3 tags per note
			numTags := s.r.Intn(3) + 1
			picked := s.r.Perm(len(tags))[:numTags]
			for _, ti := range picked {
				if err := s.db.Model(&note).Association("Tags").Append(&tags[ti]); err != nil {
					return nil, err
				}
			}

			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (s *Seeder) createComments(users []models.User, notes []models.Note) (int, error) {
	count := 0
	for _, note := range notes {
		numComments := s.r.Intn(4)
		for i := 0; i < numComments; i++ {
			comment := models.Comment{
				NoteID:  note.ID,
				UserID:  users[s.r.Intn(len(users))].ID,
				Content: commentBodies[s.r.Intn(len(commentBodies))],
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// castVotes gives each note votes from a random subset of users, at most
// one vote per user per note.
func (s *Seeder) castVotes(users []models.User, notes []models.Note) (int, error) {
	count := 0
	for _, note := range notes {
		numVoters := s.r.Intn(len(users) + 1)
		for _, ui := range s.r.Perm(len(users))[:numVoters] {
			noteID := note.ID
			voteType := models.VoteUp
			if s.r.Float32() < 0.3 {
				voteType = models.VoteDown
			}
			vote := models.Vote{
				UserID:   users[ui].ID,
				NoteID:   &noteID,
				VoteType: voteType,
			}
			if err := s.db.Create(&vote).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *Seeder) addFavorites(users []models.User, notes []models.Note) (int, error) {
	count := 0
	for _, user := range users {
		numFavs := s.r.Intn(4)
		for _, ni := range s.r.Perm(len(notes))[:min(numFavs, len(notes))] {
			fav := models.Favorite{UserID: user.ID, NoteID: notes[ni].ID}
			if err := s.db.Create(&fav).Error; err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

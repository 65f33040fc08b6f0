package store

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pec-events/portal/internal/model"
)

// Fixture is the bootstrap dataset: the fixed user set, the festival
// calendar, and a handful of registrations so dashboards are not empty
// on first run.
type Fixture struct {
	Users         []model.User
	Events        []model.Event
	Registrations []model.Registration
}

// NewFixture builds the bootstrap dataset. Every user gets the same
// password, hashed once.
func NewFixture(password string) (*Fixture, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	f := &Fixture{
		Users: []model.User{
			{ID: "student1", Name: "Alice Smith", Email: "alice@pec.ac.in", Role: model.RoleStudent, House: model.HouseBlue, ProfilePictureURL: "https://i.pravatar.cc/150?u=student1"},
			{ID: "student2", Name: "Bob Johnson", Email: "bob@pec.ac.in", Role: model.RoleStudent, House: model.HouseRed, ProfilePictureURL: "https://i.pravatar.cc/150?u=student2"},
			{ID: "student3", Name: "Charlie Brown", Email: "charlie@pec.ac.in", Role: model.RoleStudent, House: model.HouseGreen, ProfilePictureURL: "https://i.pravatar.cc/150?u=student3"},
			{ID: "student4", Name: "Diana Prince", Email: "diana@pec.ac.in", Role: model.RoleStudent, House: model.HouseYellow, ProfilePictureURL: "https://i.pravatar.cc/150?u=student4"},
			{ID: "student5", Name: "Eve Adams", Email: "eve@pec.ac.in", Role: model.RoleStudent, House: model.HouseRed, ProfilePictureURL: "https://i.pravatar.cc/150?u=student5"},
			{ID: "hadmin1", Name: "Henry Blue", Email: "hblue@pec.ac.in", Role: model.RoleHouseAdmin, House: model.HouseBlue, ProfilePictureURL: "https://i.pravatar.cc/150?u=hadmin1"},
			{ID: "hadmin2", Name: "Helen Red", Email: "hred@pec.ac.in", Role: model.RoleHouseAdmin, House: model.HouseRed, ProfilePictureURL: "https://i.pravatar.cc/150?u=hadmin2"},
			{ID: "judge1", Name: "Judge Judy", Email: "judy@pec.ac.in", Role: model.RoleJudge, ProfilePictureURL: "https://i.pravatar.cc/150?u=judge1"},
			{ID: "judge2", Name: "Judge Simon", Email: "simon@pec.ac.in", Role: model.RoleJudge, ProfilePictureURL: "https://i.pravatar.cc/150?u=judge2"},
			{ID: "admin1", Name: "Admin User", Email: "admin@pec.ac.in", Role: model.RoleWebsiteAdmin, ProfilePictureURL: "https://i.pravatar.cc/150?u=admin1"},
		},
		Events: []model.Event{
			{ID: "event1", Name: "Solo Singing", Category: model.CategoryArts, Description: "A melodious solo singing competition to find the voice of PEC.", Rules: "One song per participant. Max duration 5 minutes.", EventType: model.EventNormal, AssignedJudgeIDs: []string{"judge1"}, Date: time.Date(2024, 9, 10, 10, 0, 0, 0, time.UTC)},
			{ID: "event2", Name: "100m Sprint", Category: model.CategorySports, Description: "A 100-meter sprint race for the fastest athletes.", Rules: "Standard athletic rules apply. Spikes are allowed.", EventType: model.EventNormal, MaxParticipants: 8, AssignedJudgeIDs: []string{"judge2"}, Date: time.Date(2024, 9, 11, 14, 0, 0, 0, time.UTC)},
			{ID: "event3", Name: "Group Dance", Category: model.CategoryArts, Description: "A dynamic group dance competition showcasing teamwork and choreography.", Rules: "Team of 4-8 members. Performance duration 5-7 minutes.", EventType: model.EventPermissionRequired, AssignedJudgeIDs: []string{"judge1"}, Date: time.Date(2024, 9, 12, 18, 0, 0, 0, time.UTC)},
			{ID: "event4", Name: "Chess Tournament", Category: model.CategorySports, Description: "A competitive chess tournament for the sharpest minds.", Rules: "Swiss-system tournament with 5 rounds. Touch-move rule applies.", EventType: model.EventPermissionRequired, AssignedJudgeIDs: []string{"judge2"}, Date: time.Date(2024, 9, 13, 9, 0, 0, 0, time.UTC)},
			{ID: "event5", Name: "Oil Painting", Category: model.CategoryArts, Description: "An on-the-spot oil painting event to unleash creativity.", Rules: "Theme will be given on the spot. Canvas and basic colors provided.", EventType: model.EventNormal, AssignedJudgeIDs: []string{"judge1"}, Date: time.Date(2024, 9, 14, 11, 0, 0, 0, time.UTC)},
		},
		Registrations: []model.Registration{
			{ID: "reg1", EventID: "event1", StudentID: "student1", Status: model.StatusRegistered, Score: intPtr(85)},
			{ID: "reg2", EventID: "event2", StudentID: "student2", Status: model.StatusRegistered, Score: intPtr(92)},
			{ID: "reg3", EventID: "event3", StudentID: "student1", Status: model.StatusApproved, Score: intPtr(88)},
			{ID: "reg4", EventID: "event3", StudentID: "student5", Status: model.StatusPending},
			{ID: "reg5", EventID: "event4", StudentID: "student3", Status: model.StatusRejected},
			{ID: "reg6", EventID: "event1", StudentID: "student2", Status: model.StatusRegistered, Score: intPtr(78)},
		},
	}
	for i := range f.Users {
		f.Users[i].PasswordHash = string(hash)
	}
	return f, nil
}

func intPtr(v int) *int { return &v }

package familylink

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AlwaysAllowedStateEnabled is the wire value marking an app as exempt from
// limits.
const AlwaysAllowedStateEnabled = "alwaysAllowedStateEnabled"

// UsageLimit is the numeric daily cap attached to an app.
type UsageLimit struct {
	DailyUsageLimitMins int  `json:"dailyUsageLimitMins"`
	Enabled             bool `json:"enabled"`
}

// AlwaysAllowedAppInfo carries the always-allowed marker for an app.
type AlwaysAllowedAppInfo struct {
	AlwaysAllowedState string `json:"alwaysAllowedState"`
}

// Enabled reports whether the always-allowed marker is active.
func (i *AlwaysAllowedAppInfo) Enabled() bool {
	return i != nil && i.AlwaysAllowedState == AlwaysAllowedStateEnabled
}

// SupervisionSetting is the restriction state attached to one app.
type SupervisionSetting struct {
	Hidden               bool                  `json:"hidden"`
	HiddenSetExplicitly  bool                  `json:"hiddenSetExplicitly"`
	UsageLimit           *UsageLimit           `json:"usageLimit,omitempty"`
	AlwaysAllowedAppInfo *AlwaysAllowedAppInfo `json:"alwaysAllowedAppInfo,omitempty"`
}

// App is one installed app on the supervised account.
type App struct {
	PackageName             string             `json:"packageName"`
	Title                   string             `json:"title"`
	IconURL                 string             `json:"iconUrl"`
	SupervisionSetting      SupervisionSetting `json:"supervisionSetting"`
	InstallTimeMillis       string             `json:"installTimeMillis"`
	AppSource               string             `json:"appSource"`
	SupervisionCapabilities []string           `json:"supervisionCapabilities"`
	DeviceIDs               []string           `json:"deviceIds,omitempty"`
}

// AppID identifies an app in a usage session.
type AppID struct {
	AndroidAppPackageName string `json:"androidAppPackageName"`
}

// UsageDate is the calendar day a usage session belongs to.
type UsageDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// On reports whether the date falls on the same calendar day as t.
func (d UsageDate) On(t time.Time) bool {
	return d.Year == t.Year() && d.Month == int(t.Month()) && d.Day == t.Day()
}

// AppUsageSession is one recorded slice of screen time for an app.
type AppUsageSession struct {
	Usage       string    `json:"usage"` // seconds with decimals, "123.456s"
	AppID       AppID     `json:"appId"`
	DeviceMudID string    `json:"deviceMudId"`
	Date        UsageDate `json:"date"`
}

// Seconds parses the session duration. Malformed values count as zero.
func (s AppUsageSession) Seconds() float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s.Usage, "s"), 64)
	if err != nil {
		return 0
	}
	return v
}

// DeviceDisplayInfo is the human-readable description of a device.
type DeviceDisplayInfo struct {
	Model                  string `json:"model"`
	FriendlyName           string `json:"friendlyName"`
	LastActivityTimeMillis string `json:"lastActivityTimeMillis"`
}

// DeviceInfo describes one device linked to the supervised account.
type DeviceInfo struct {
	DeviceID    string            `json:"deviceId"`
	DisplayInfo DeviceDisplayInfo `json:"displayInfo"`
}

// APIHeader is the common response header.
type APIHeader struct {
	ServerTimestampMillis string `json:"serverTimestampMillis"`
}

// AppUsage is the apps-and-usage snapshot for one account.
type AppUsage struct {
	APIHeader        APIHeader         `json:"apiHeader"`
	Apps             []App             `json:"apps"`
	DeviceInfo       []DeviceInfo      `json:"deviceInfo"`
	AppUsageSessions []AppUsageSession `json:"appUsageSessions"`
}

// Validate checks the schema invariants the rest of the run relies on.
func (u *AppUsage) Validate() error {
	for i, app := range u.Apps {
		if app.PackageName == "" {
			return fmt.Errorf("apps[%d]: missing packageName", i)
		}
		if app.Title == "" {
			return fmt.Errorf("apps[%d] (%s): missing title", i, app.PackageName)
		}
	}
	return nil
}

// AppTitle returns the display title for a package name, or "Unknown".
func (u *AppUsage) AppTitle(packageName string) string {
	for _, app := range u.Apps {
		if app.PackageName == packageName {
			return app.Title
		}
	}
	return "Unknown"
}

// Profile is the public profile of a family member.
type Profile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	FamilyName  string `json:"familyName"`
	GivenName   string `json:"givenName"`
}

// MemberSupervisionInfo marks supervised members.
type MemberSupervisionInfo struct {
	IsSupervisedMember      bool `json:"isSupervisedMember"`
	IsGuardianLinkedAccount bool `json:"isGuardianLinkedAccount"`
}

// Member is one member of the family group.
type Member struct {
	UserID                string                 `json:"userId"`
	Role                  string                 `json:"role"`
	Profile               Profile                `json:"profile"`
	State                 string                 `json:"state"`
	MemberSupervisionInfo *MemberSupervisionInfo `json:"memberSupervisionInfo,omitempty"`
}

// Supervised reports whether the member is a supervised account.
func (m Member) Supervised() bool {
	return m.MemberSupervisionInfo != nil && m.MemberSupervisionInfo.IsSupervisedMember
}

// MembersResponse is the family members listing.
type MembersResponse struct {
	Members   []Member  `json:"members"`
	APIHeader APIHeader `json:"apiHeader"`
	MyUserID  string    `json:"myUserId"`
}

// Validate checks the schema invariants the rest of the run relies on.
func (r *MembersResponse) Validate() error {
	for i, member := range r.Members {
		if member.UserID == "" {
			return fmt.Errorf("members[%d]: missing userId", i)
		}
	}
	return nil
}

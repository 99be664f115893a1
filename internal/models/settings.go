package models

// SettingsID is the key of the single site settings document
const SettingsID = "settings"

// Settings holds the site-wide editable content
type Settings struct {
	ID             string  `json:"id" db:"id"`
	LogoURL        *string `json:"logo_url" db:"logo_url"`
	StadiumName    *string `json:"stadium_name" db:"stadium_name"`
	StadiumInfo    *string `json:"stadium_info" db:"stadium_info"`
	ContactEmail   *string `json:"contact_email" db:"contact_email"`
	ContactPhone   *string `json:"contact_phone" db:"contact_phone"`
	ContactAddress *string `json:"contact_address" db:"contact_address"`
}

// SettingsUpdate is a partial update; nil fields are left untouched
type SettingsUpdate struct {
	LogoURL        *string `json:"logo_url"`
	StadiumName    *string `json:"stadium_name"`
	StadiumInfo    *string `json:"stadium_info"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone"`
	ContactAddress *string `json:"contact_address"`
}

// DefaultSettings returns an empty settings document
func DefaultSettings() *Settings {
	return &Settings{ID: SettingsID}
}

// IsEmpty reports whether the update carries no fields
func (u *SettingsUpdate) IsEmpty() bool {
	return u.LogoURL == nil && u.StadiumName == nil && u.StadiumInfo == nil &&
		u.ContactEmail == nil && u.ContactPhone == nil && u.ContactAddress == nil
}

// Apply copies the non-nil fields onto s
func (u *SettingsUpdate) Apply(s *Settings) {
	if u.LogoURL != nil {
		s.LogoURL = u.LogoURL
	}
	if u.StadiumName != nil {
		s.StadiumName = u.StadiumName
	}
	if u.StadiumInfo != nil {
		s.StadiumInfo = u.StadiumInfo
	}
	if u.ContactEmail != nil {
		s.ContactEmail = u.ContactEmail
	}
	if u.ContactPhone != nil {
		s.ContactPhone = u.ContactPhone
	}
	if u.ContactAddress != nil {
		s.ContactAddress = u.ContactAddress
	}
}

// ClubSettingsDefaults returns the club's stadium and contact details used to
// seed a fresh install. The logo is left to the admin panel.
func ClubSettingsDefaults() *SettingsUpdate {
	str := func(s string) *string { return &s }

	return &SettingsUpdate{
		StadiumName:    str("Стадион Темелли"),
		StadiumInfo:    str("Стадион Темелли - домашняя арена ФК Александрия. Построен в 2003 году, вместимость 12 000 зрителей. Расположен в Александрии, Крым."),
		ContactEmail:   str("info@fc-alexandria.ru"),
		ContactPhone:   str("+79788378777"),
		ContactAddress: str("Александрия, Крым, ул. Стадионная, 1"),
	}
}

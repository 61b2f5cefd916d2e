package alipay

// UserProfile is the normalized shared profile of an Alipay user.
type UserProfile struct {
	ID                 string         `json:"id"`
	Nickname           string         `json:"nickname"`
	Name               string         `json:"name"`
	Avatar             string         `json:"avatar"`
	Province           string         `json:"province"`
	City               string         `json:"city"`
	IsStudentCertified string         `json:"is_student_certified"`
	UserStatus         string         `json:"user_status"`
	IsCertified        string         `json:"is_certified"`
	Gender             string         `json:"gender"`
	Raw                map[string]any `json:"raw,omitempty"`
}

// MapUserProfile projects the raw profile node. Missing fields map to "".
func MapUserProfile(raw map[string]any) *UserProfile {
	nick := stringField(raw, "nick_name")
	return &UserProfile{
		ID:                 stringField(raw, "user_id"),
		Nickname:           nick,
		Name:               nick,
		Avatar:             stringField(raw, "avatar"),
		Province:           stringField(raw, "province"),
		City:               stringField(raw, "city"),
		IsStudentCertified: stringField(raw, "is_student_certified"),
		UserStatus:         stringField(raw, "user_status"),
		IsCertified:        stringField(raw, "is_certified"),
		Gender:             stringField(raw, "gender"),
		Raw:                raw,
	}
}

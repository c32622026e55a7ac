package model

// Ward unidade local (ala ou ramo), tabela wards
// UnitNumber e OrgID identificam a unidade nos sistemas da Igreja e alimentam
// os links rápidos da tela de lançamento.
type Ward struct {
	WardID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"ward_id"`
	Name            string `gorm:"type:varchar(100);not null"                     json:"name"`
	MembershipCount int    `gorm:"not null;default:0"                             json:"membership_count"`
	UnitNumber      string `gorm:"type:varchar(20)"                               json:"unit_number,omitempty"`
	OrgID           string `gorm:"type:varchar(20)"                               json:"org_id,omitempty"`
	Active          bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName nome da tabela
func (Ward) TableName() string { return "wards" }

package domain

import "fmt"

// OrgSize buckets drive task estimate adjustments.
type OrgSize string

const (
	OrgSizeSmall      OrgSize = "small"
	OrgSizeMedium     OrgSize = "medium"
	OrgSizeLarge      OrgSize = "large"
	OrgSizeEnterprise OrgSize = "enterprise"
)

// OrgProfile describes the organization under assessment.
type OrgProfile struct {
	Name    string
	Size    OrgSize
	User    string
	Targets map[string]float64
}

func (p OrgProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Size)
}

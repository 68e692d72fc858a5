package user

import (
	"fmt"

	"bookcircle/utils"
)

const referralCodeLength = 8

// newUniqueReferralCode retries until the generated code is unused.
func (s *DefaultUserService) newUniqueReferralCode() (string, error) {
	for attempts := 0; attempts < 5; attempts++ {
		code, err := utils.RandomCode(referralCodeLength)
		if err != nil {
			return "", err
		}
		existing, err := s.Repo.GetByReferralCode(code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique referral code")
}

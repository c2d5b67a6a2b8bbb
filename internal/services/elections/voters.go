package elections

import (
	"fmt"
	"strings"

	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/BearBump/DVCPortal/internal/validate"
)

const (
	reasonNotFound  = "Không tìm thấy thông tin trong cơ sở dữ liệu"
	reasonMismatch  = "Thông tin không khớp"
	suggestUnderAge = "Bạn sẽ đủ điều kiện bầu cử khi đủ 18 tuổi."
	suggestNotFound = "Vui lòng liên hệ UBND xã/phường nơi cư trú để đăng ký hoặc kiểm tra lại thông tin."
	suggestMismatch = "Vui lòng kiểm tra lại họ tên và năm sinh. Nếu cần hỗ trợ, liên hệ UBND xã/phường."
)

// CheckVoter looks the citizen up in the demo voter list. A negative answer
// is still a successful result with a reason.
func (s *Service) CheckVoter(in models.VoterCheckInput) (models.VoterCheckResult, error) {
	if err := validate.VoterCheck(in); err != nil {
		return models.VoterCheckResult{}, err
	}
	id := strings.TrimSpace(in.IDNumber)
	birthYear := int(in.BirthYear)

	voter, ok := s.findVoter(id)
	if !ok {
		if s.electionAt.Year()-birthYear < votingAge {
			return models.VoterCheckResult{
				Reason:     fmt.Sprintf("Chưa đủ 18 tuổi tính đến ngày bầu cử (%s)", s.electionAt.Format("02/01/2006")),
				Suggestion: suggestUnderAge,
			}, nil
		}
		return models.VoterCheckResult{Reason: reasonNotFound, Suggestion: suggestNotFound}, nil
	}

	if strings.ToLower(voter.FullName) != strings.ToLower(strings.TrimSpace(in.FullName)) || voter.BirthYear != birthYear {
		return models.VoterCheckResult{Reason: reasonMismatch, Suggestion: suggestMismatch}, nil
	}
	return models.VoterCheckResult{Registered: true, Voter: &voter}, nil
}

func (s *Service) findVoter(id string) (models.Voter, bool) {
	for _, v := range s.data.Voters {
		if v.IDNumber == id {
			return v, true
		}
	}
	return models.Voter{}, false
}

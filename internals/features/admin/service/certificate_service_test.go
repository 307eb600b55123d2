package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	awardModel "competition_portal_backend/internals/features/awards/model"
	notificationModel "competition_portal_backend/internals/features/notifications/model"
)

var certificateNumberPattern = regexp.MustCompile(`^COLLEGE-\d{8}-\d{4}$`)

func TestIssueCollegeCertificate(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	issuer := seedUser(t, db, "admin", "admin")
	user := seedUser(t, db, "alice", "user")

	award, err := svc.IssueCollegeCertificate(IssueCertificateInput{
		UserID:           user.ID,
		AwardName:        "Campus Innovation Prize",
		AwardTime:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CertificateImage: "/uploads/certificates/cert.pdf",
		IssuedBy:         issuer.ID,
	})
	require.NoError(t, err)

	require.Equal(t, awardModel.LevelCollege, award.AwardLevel)
	require.Equal(t, awardModel.StatusApproved, award.Status)
	require.NotNil(t, award.IssuedBy)
	require.Equal(t, issuer.ID, *award.IssuedBy)
	require.NotNil(t, award.CertificateNumber)
	require.Regexp(t, certificateNumberPattern, *award.CertificateNumber)

	var notification notificationModel.NotificationModel
	require.NoError(t, db.First(&notification, "user_id = ?", user.ID).Error)
	require.Equal(t, notificationModel.TypeCertificateIssued, notification.Type)
}

func TestIssueCollegeCertificateNumbersUnique(t *testing.T) {
	db := newTestDB(t)
	svc := newReviewService(db)
	issuer := seedUser(t, db, "admin", "admin")
	user := seedUser(t, db, "alice", "user")

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		award, err := svc.IssueCollegeCertificate(IssueCertificateInput{
			UserID:           user.ID,
			AwardName:        "Campus Innovation Prize",
			AwardTime:        time.Now(),
			CertificateImage: "/uploads/certificates/cert.pdf",
			IssuedBy:         issuer.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, award.CertificateNumber)
		require.False(t, seen[*award.CertificateNumber], "duplicate certificate number issued")
		seen[*award.CertificateNumber] = true
	}
}

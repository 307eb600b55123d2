package service

import (
	"archive/zip"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	awardModel "competition_portal_backend/internals/features/awards/model"
	registrationModel "competition_portal_backend/internals/features/registrations/model"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
)

const exportSheet = "Sheet1"

// AwardExportFilter mirrors the admin award list filters.
type AwardExportFilter struct {
	Level  string
	Status string
}

// RegistrationExportFilter mirrors the admin registration list filters.
type RegistrationExportFilter struct {
	CompetitionID *uuid.UUID
	Status        string
}

// BuildAwardsWorkbook renders the filtered award list into an xlsx workbook
// and reports how many data rows it wrote.
func BuildAwardsWorkbook(db *gorm.DB, filter AwardExportFilter) (*excelize.File, int, error) {
	q := db.Model(&awardModel.AwardModel{}).
		Preload("User").
		Preload("Competition").
		Order("award_time DESC")
	if filter.Level != "" {
		q = q.Where("award_level = ?", filter.Level)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var awards []awardModel.AwardModel
	if err := q.Find(&awards).Error; err != nil {
		return nil, 0, err
	}

	f, err := newWorkbook([]string{
		"Username", "Real Name", "Student ID", "Competition",
		"Award Level", "Award Name", "Rank", "Award Time",
		"Certificate Number", "Status",
	})
	if err != nil {
		return nil, 0, err
	}

	for i, a := range awards {
		var username, realName, studentID, competition string
		if a.User != nil {
			username = a.User.Username
			realName = deref(a.User.RealName)
			studentID = deref(a.User.StudentID)
		}
		if a.Competition != nil {
			competition = a.Competition.Title
		}
		writeRow(f, i+2, []interface{}{
			username, realName, studentID, competition,
			a.AwardLevel, a.AwardName, deref(a.AwardRank),
			a.AwardTime.Format("2006-01-02 15:04:05"),
			deref(a.CertificateNumber), a.Status,
		})
	}
	return f, len(awards), nil
}

// BuildRegistrationsWorkbook renders the filtered registration list into an
// xlsx workbook and reports how many data rows it wrote.
func BuildRegistrationsWorkbook(db *gorm.DB, filter RegistrationExportFilter) (*excelize.File, int, error) {
	q := db.Model(&registrationModel.RegistrationModel{}).
		Preload("User").
		Preload("Competition").
		Order("created_at DESC")
	if filter.CompetitionID != nil {
		q = q.Where("competition_id = ?", *filter.CompetitionID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var registrations []registrationModel.RegistrationModel
	if err := q.Find(&registrations).Error; err != nil {
		return nil, 0, err
	}

	f, err := newWorkbook([]string{
		"Username", "Real Name", "Student ID", "Competition",
		"Status", "Files", "Registered At", "Reviewed At", "Review Notes",
	})
	if err != nil {
		return nil, 0, err
	}

	for i, r := range registrations {
		var username, realName, studentID, competition, reviewedAt string
		if r.User != nil {
			username = r.User.Username
			realName = deref(r.User.RealName)
			studentID = deref(r.User.StudentID)
		}
		if r.Competition != nil {
			competition = r.Competition.Title
		}
		if r.ReviewedAt != nil {
			reviewedAt = r.ReviewedAt.Format("2006-01-02 15:04:05")
		}
		writeRow(f, i+2, []interface{}{
			username, realName, studentID, competition,
			r.Status, len(r.AttachmentList()),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			reviewedAt, deref(r.ReviewNotes),
		})
	}
	return f, len(registrations), nil
}

// WriteMaterialsZip streams every resolvable attachment of a competition's
// registrations into w, one folder per registrant. Attachments whose URL no
// longer maps to a file on disk are skipped. Returns the number of files
// written.
func WriteMaterialsZip(db *gorm.DB, blobs storage.BlobService, competitionID uuid.UUID, w io.Writer) (int, error) {
	var registrations []registrationModel.RegistrationModel
	err := db.Preload("User").
		Where("competition_id = ?", competitionID).
		Order("created_at ASC").
		Find(&registrations).Error
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)
	written := 0
	for _, r := range registrations {
		attachments := r.AttachmentList()
		if len(attachments) == 0 {
			continue
		}
		folder := registrantFolder(&r)
		for _, att := range attachments {
			diskPath, ok := blobs.ResolvePublicURL(att.URL)
			if !ok {
				continue
			}
			name := helper.SafeArchiveName(att.OriginalName)
			if name == "" {
				name = att.Filename
			}
			if err := addZipFile(zw, folder+"/"+name, diskPath); err != nil {
				zw.Close()
				return written, err
			}
			written++
		}
	}
	return written, zw.Close()
}

func registrantFolder(r *registrationModel.RegistrationModel) string {
	name := "unknown"
	student := ""
	if r.User != nil {
		if r.User.RealName != nil && *r.User.RealName != "" {
			name = *r.User.RealName
		} else {
			name = r.User.Username
		}
		student = deref(r.User.StudentID)
	}
	if student != "" {
		name = name + "_" + student
	}
	return helper.SafeArchiveName(name)
}

func addZipFile(zw *zip.Writer, entryName, diskPath string) error {
	src, err := os.Open(diskPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := zw.Create(entryName)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

func newWorkbook(headers []string) (*excelize.File, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(exportSheet, "A1", last, style)
	// Keep the header row visible while scrolling.
	f.SetPanes(exportSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})
	return f, nil
}

func writeRow(f *excelize.File, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(exportSheet, cell, v)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

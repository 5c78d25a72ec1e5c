package models

// Multipart field names of the registration payload wire format. Scalar fields
// travel as strings, the record lists as JSON strings, files as binary parts.
const (
	FieldEmail           = "email"
	FieldMobile          = "mobile"
	FieldPassword        = "password"
	FieldFullName        = "fullName"
	FieldJobRole         = "jobRole"
	FieldSector          = "sector"
	FieldExpectedSalary  = "expectedSalary"
	FieldDOB             = "dob"
	FieldAge             = "age"
	FieldGender          = "gender"
	FieldAddress         = "address"
	FieldBio             = "bio"
	FieldEducation       = "education"
	FieldExperiences     = "experiences"
	FieldOrgType         = "organizationType"
	FieldContactName     = "contactName"
	FieldCompanyName     = "companyName"
	FieldWebsite         = "website"
	FieldOpenings        = "openings"
	FieldAbout           = "about"
)

// FresherSentinel replaces the experiences array for candidates without
// prior employment.
const FresherSentinel = "Fresher"

// Attachment slot names double as multipart file field names.
const (
	SlotAadharFile  = "aadharFile"
	SlotProfilePic  = "profilePic"
	SlotCertificate = "certificate"
	SlotLicense     = "license"
	SlotCompanyLogo = "companyLogo"
)

// JobSeekerSlots and BusinessSlots enumerate the valid attachment slots per flow.
var (
	JobSeekerSlots = []string{SlotAadharFile, SlotProfilePic, SlotCertificate, SlotLicense}
	BusinessSlots  = []string{SlotCompanyLogo, SlotProfilePic}
)

// UploadedFile is one binary part of a parsed registration payload.
type UploadedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RegistrationData is the parsed form of a RegistrationPayload as seen by the
// gateway after decoding the multipart body.
type RegistrationData struct {
	Fields      map[string]string
	Education   []EducationRecord
	Experiences []ExperienceRecord
	Fresher     bool
	Files       map[string]UploadedFile
}

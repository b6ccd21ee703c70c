package annotation

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/shelterhq/backend/internal/application/audit"
	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/annotation"
	"github.com/shelterhq/backend/internal/domain/audit"
	"github.com/shelterhq/backend/internal/domain/person"
	"github.com/shelterhq/backend/internal/domain/shared"
)

// AnnotationService manages notes and photo metadata attached to animals,
// people and applications. Subject references are resolved in the caller's
// organization before anything is written.
type AnnotationService struct {
	uow        shared.UnitOfWork
	noteRepo   annotation.NoteRepository
	photoRepo  annotation.PhotoRepository
	animalRepo animal.Repository
	personRepo person.Repository
	appRepo    adoption.ApplicationRepository
	recorder   *auditapp.Recorder
}

// NewAnnotationService creates a new AnnotationService
func NewAnnotationService(
	uow shared.UnitOfWork,
	noteRepo annotation.NoteRepository,
	photoRepo annotation.PhotoRepository,
	animalRepo animal.Repository,
	personRepo person.Repository,
	appRepo adoption.ApplicationRepository,
	recorder *auditapp.Recorder,
) *AnnotationService {
	return &AnnotationService{
		uow:        uow,
		noteRepo:   noteRepo,
		photoRepo:  photoRepo,
		animalRepo: animalRepo,
		personRepo: personRepo,
		appRepo:    appRepo,
		recorder:   recorder,
	}
}

// AddNote attaches a note to a subject
func (s *AnnotationService) AddNote(ctx context.Context, organizationID, actorID uuid.UUID, req AddNoteRequest) (*NoteResponse, error) {
	subject, err := annotation.NewSubjectRef(req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, err
	}

	var result *annotation.Note
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.resolveSubject(ctx, organizationID, subject); err != nil {
			return err
		}

		note, err := annotation.NewNote(organizationID, subject, actorID, req.Body, req.Visibility)
		if err != nil {
			return err
		}
		if err := s.noteRepo.Save(ctx, note); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, "Note", note.ID, noteSnapshot(note)); err != nil {
			return err
		}

		result = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToNoteResponse(result)
	return &response, nil
}

// ListNotes retrieves notes on a subject. Non-staff callers only see
// portal-visible notes.
func (s *AnnotationService) ListNotes(ctx context.Context, organizationID uuid.UUID, req ListNotesRequest, portalOnly bool) ([]NoteResponse, error) {
	subject, err := annotation.NewSubjectRef(req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.FindBySubject(ctx, organizationID, subject, portalOnly, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return ToNoteResponses(notes), nil
}

// EditNote replaces the body or visibility of a note
func (s *AnnotationService) EditNote(ctx context.Context, organizationID, actorID, noteID uuid.UUID, req EditNoteRequest) (*NoteResponse, error) {
	var result *annotation.Note
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		note, err := s.noteRepo.FindByIDForOrg(ctx, organizationID, noteID)
		if err != nil {
			return err
		}

		before := noteSnapshot(note)
		if req.Body != "" {
			if err := note.Edit(req.Body); err != nil {
				return err
			}
		}
		if req.Visibility != nil {
			if err := note.ChangeVisibility(*req.Visibility); err != nil {
				return err
			}
		}
		note.IncrementVersion()

		if err := s.noteRepo.Save(ctx, note); err != nil {
			return err
		}
		if err := s.recorder.Updated(ctx, organizationID, &actorID, "Note", note.ID, before, noteSnapshot(note)); err != nil {
			return err
		}

		result = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToNoteResponse(result)
	return &response, nil
}

// DeleteNote removes a note
func (s *AnnotationService) DeleteNote(ctx context.Context, organizationID, actorID, noteID uuid.UUID) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		note, err := s.noteRepo.FindByIDForOrg(ctx, organizationID, noteID)
		if err != nil {
			return err
		}
		if err := s.noteRepo.Delete(ctx, organizationID, noteID); err != nil {
			return err
		}
		return s.recorder.Deleted(ctx, organizationID, &actorID, "Note", noteID, noteSnapshot(note))
	})
}

// AddPhoto records photo metadata for a subject
func (s *AnnotationService) AddPhoto(ctx context.Context, organizationID, actorID uuid.UUID, req AddPhotoRequest) (*PhotoResponse, error) {
	subject, err := annotation.NewSubjectRef(req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, err
	}

	var result *annotation.Photo
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.resolveSubject(ctx, organizationID, subject); err != nil {
			return err
		}

		photo, err := annotation.NewPhoto(organizationID, subject, actorID, req.URL)
		if err != nil {
			return err
		}
		photo.SetCaption(req.Caption)
		if req.ContentType != "" || req.SizeBytes > 0 {
			if err := photo.SetMetadata(req.ContentType, req.SizeBytes); err != nil {
				return err
			}
		}
		if req.IsPrimary {
			photo.MarkPrimary()
		}

		if err := s.photoRepo.Save(ctx, photo); err != nil {
			return err
		}
		if err := s.recorder.Created(ctx, organizationID, &actorID, "Photo", photo.ID, audit.Snapshot{
			"subject_type": string(photo.SubjectType),
			"subject_id":   photo.SubjectID.String(),
			"url":          photo.URL,
		}); err != nil {
			return err
		}

		result = photo
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToPhotoResponse(result)
	return &response, nil
}

// ListPhotos retrieves photos on a subject, primary first
func (s *AnnotationService) ListPhotos(ctx context.Context, organizationID uuid.UUID, subjectType annotation.SubjectType, subjectID uuid.UUID) ([]PhotoResponse, error) {
	subject, err := annotation.NewSubjectRef(subjectType, subjectID)
	if err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.FindBySubject(ctx, organizationID, subject, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return ToPhotoResponses(photos), nil
}

// DeletePhoto removes a photo record
func (s *AnnotationService) DeletePhoto(ctx context.Context, organizationID, actorID, photoID uuid.UUID) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		photo, err := s.photoRepo.FindByIDForOrg(ctx, organizationID, photoID)
		if err != nil {
			return err
		}
		if err := s.photoRepo.Delete(ctx, organizationID, photoID); err != nil {
			return err
		}
		return s.recorder.Deleted(ctx, organizationID, &actorID, "Photo", photoID, audit.Snapshot{
			"subject_type": string(photo.SubjectType),
			"subject_id":   photo.SubjectID.String(),
			"url":          photo.URL,
		})
	})
}

// resolveSubject checks the subject exists in the caller's organization. A
// miss surfaces as UNKNOWN_ENTITY regardless of where the ID lives.
func (s *AnnotationService) resolveSubject(ctx context.Context, organizationID uuid.UUID, subject annotation.SubjectRef) error {
	switch subject.SubjectType {
	case annotation.SubjectAnimal:
		_, err := s.animalRepo.FindByIDForOrg(ctx, organizationID, subject.SubjectID)
		return err
	case annotation.SubjectPerson:
		_, err := s.personRepo.FindByIDForOrg(ctx, organizationID, subject.SubjectID)
		return err
	case annotation.SubjectApplication:
		_, err := s.appRepo.FindByIDForOrg(ctx, organizationID, subject.SubjectID)
		return err
	}
	return shared.ErrUnknownEntity
}

func noteSnapshot(n *annotation.Note) audit.Snapshot {
	return audit.Snapshot{
		"subject_type": string(n.SubjectType),
		"subject_id":   n.SubjectID.String(),
		"visibility":   string(n.Visibility),
		"body":         n.Body,
	}
}

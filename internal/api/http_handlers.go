package api

import (
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.UserInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	user, err := s.svc.Users.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	user, err := s.svc.Users.GetByID(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var in models.UserInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	user, err := s.svc.Users.Update(r.Context(), id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	if err := s.svc.Users.Delete(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var in models.ItemInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	item, err := s.svc.Items.Create(r.Context(), ownerID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	items, err := s.svc.Items.ListByOwner(r.Context(), ownerID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Items.Search(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	item, err := s.svc.Items.GetByID(r.Context(), itemID, userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var in models.ItemInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	item, err := s.svc.Items.Update(r.Context(), ownerID, itemID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handlePostComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var in models.CommentInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	comment, err := s.svc.Comments.Post(r.Context(), authorID, itemID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var in models.RequestInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	request, err := s.svc.Requests.Create(r.Context(), userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	requests, err := s.svc.Requests.ListForRequestor(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	requests, err := s.svc.Requests.ListAll(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	requestID, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	request, err := s.svc.Requests.GetByID(r.Context(), userID, requestID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	var in models.BookingInput
	if err := decodeBody(r, &in); err != nil {
		fail(w, r, err)
		return
	}
	in.BookerID = bookerID

	booking, err := s.svc.Bookings.Create(r.Context(), bookerID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	approved, err := approvedParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	booking, err := s.svc.Bookings.Decide(r.Context(), bookingID, userID, approved)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	booking, err := s.svc.Bookings.GetByID(r.Context(), bookingID, userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	userID, state, err := bookingListParams(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	bookings, err := s.svc.Bookings.ListForBooker(r.Context(), userID, state)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	userID, state, err := bookingListParams(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	bookings, err := s.svc.Bookings.ListForOwner(r.Context(), userID, state)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	userID, state, err := bookingListParams(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	buf, err := s.svc.Bookings.ExportForOwner(r.Context(), userID, state)
	if err != nil {
		fail(w, r, err)
		return
	}

	filename := "bookings_" + strings.ToLower(state.String()) + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func bookingListParams(r *http.Request) (int64, models.BookingState, error) {
	userID, err := sharerID(r)
	if err != nil {
		return 0, models.StateAll, err
	}
	state, err := models.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		return 0, models.StateAll, apperr.BadRequest("%s", err.Error())
	}
	return userID, state, nil
}

func approvedParam(r *http.Request) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("approved"))
	if raw == "" {
		return false, apperr.BadRequest("Required request parameter 'approved' is not present")
	}
	approved, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.BadRequest("Parameter approved must be true or false, got %q", raw)
	}
	return approved, nil
}

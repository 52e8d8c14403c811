// Package mocks provides shared test doubles for the store, service and
// generation interfaces.
//
// Store and engine doubles embed testify's mock.Mock and are driven with
// On/Return expectations. The JWT service, password verifier and
// generator doubles use function fields with static defaults, which
// keeps handler tests short:
//
//	jwt := &mocks.MockJWTService{Token: "access", RefreshToken: "refresh"}
//	profiles := new(mocks.ProfileStore)
//	profiles.On("GetByID", mock.Anything, id).Return(profile, nil)
package mocks

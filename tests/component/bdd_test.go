//go:build component
// +build component

package component

func (s *ComponentTestSuite) TestCreateRandomUser() {
	_, when, then := s.gherkin()

	when().
		aRandomUserIsRequested()

	then().
		theResponseContainsAValidUser().
		listUsersContainsTheCreatedUser().
		getUserReturnsTheCreatedUser().
		anEventForTheUserCreationWillEventuallyBeArchived()
}

func (s *ComponentTestSuite) TestDeleteUser() {
	given, when, then := s.gherkin()

	given().
		anExistingUser()

	when().
		theUserGetsDeleted()

	then().
		listUsersDoesNotContainTheUser().
		anEventForTheUserDeletionWillEventuallyBeArchived()
}
